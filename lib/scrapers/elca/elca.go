package elca

import (
	"bytes"
	"context"
	"elca2dgnb/lib/htmlutil"
	"elca2dgnb/lib/restyutil"
	"encoding/json"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/elca")

var LoginFailed = fmt.Errorf("Failed to login to your eLCA account.")
var SessionExpired = fmt.Errorf("The eLCA session is no longer authenticated.")

var instrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(output restyutil.InstrumentOutput) {
	instrumentOutput = output
}

// Client is a session-holding client for the eLCA web application. Login
// state lives in the cookie jar; every other method assumes it.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	BaseUrl string
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	restyutil.InstrumentClient(client, tracer, instrumentOutput)

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

func isLoginPage(doc *goquery.Document) bool {
	return doc.Find("input[name=authName]").Length() > 0
}

// Login authenticates the session with the eLCA username/password form.
func (c *Client) Login(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/login/")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch login page")
		return err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse login page html")
		return err
	}
	if !isLoginPage(doc) {
		span.AddEvent("already logged in")
		return nil
	}

	origin := doc.Find("input[name=origin]").AttrOr("value", "")

	res, err = c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"origin":   origin,
			"authName": username,
			"authKey":  password,
		}).
		Post("/login/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}

	res, err = c.Http.R().
		SetContext(ctx).
		Get("/projects/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to request projects after login")
		return err
	}
	doc, err = goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse projects page html")
		return err
	}
	if isLoginPage(doc) {
		span.SetStatus(codes.Error, "still on login page after posting credentials")
		return LoginFailed
	}

	return nil
}

type Project struct {
	Id   string
	Name string
}

// Projects lists the projects visible to the authenticated account.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	ctx, span := tracer.Start(ctx, "client:Projects")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/projects/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch projects page")
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse projects html")
		return nil, err
	}
	if isLoginPage(doc) {
		span.SetStatus(codes.Error, "session expired")
		return nil, SessionExpired
	}

	var projects []Project
	doc.Find("ul.projects a[href*='/projects/']").Each(func(_ int, sel *goquery.Selection) {
		href := sel.AttrOr("href", "")
		id := strings.Trim(strings.TrimPrefix(strings.TrimSuffix(href, "/"), "/projects"), "/")
		if id == "" {
			return
		}
		projects = append(projects, Project{
			Id:   id,
			Name: htmlutil.CleanText(sel.Text()),
		})
	})

	span.SetAttributes(attribute.Int("projects", len(projects)))
	return projects, nil
}

// FetchProjectReport returns the LCA summary report for a project as an
// HTML fragment. eLCA answers XHR navigation with a JSON object mapping
// view names to rendered HTML; plain HTML responses are passed through
// unchanged.
func (c *Client) FetchProjectReport(ctx context.Context, projectId string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:FetchProjectReport")
	defer span.End()
	span.SetAttributes(attribute.String("project", projectId))

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("x-requested-with", "XMLHttpRequest").
		SetQueryParam("id", projectId).
		Get("/project-reports/summary/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch summary report")
		return "", err
	}

	fragment, err := extractFragment(res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract report fragment")
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse report fragment")
		return "", err
	}
	if isLoginPage(doc) {
		span.SetStatus(codes.Error, "session expired")
		return "", SessionExpired
	}
	if strings.TrimSpace(fragment) == "" {
		err := fmt.Errorf("project %s has no summary report", projectId)
		span.RecordError(err)
		span.SetStatus(codes.Error, "empty report")
		return "", err
	}

	return fragment, nil
}

func extractFragment(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return string(body), nil
	}

	var views map[string]string
	if err := json.Unmarshal(trimmed, &views); err != nil {
		return "", fmt.Errorf("unexpected json response: %w", err)
	}

	names := make([]string, 0, len(views))
	for name := range views {
		names = append(names, name)
	}
	sort.Strings(names)

	fragments := make([]string, 0, len(views))
	for _, name := range names {
		fragments = append(fragments, views[name])
	}
	return strings.Join(fragments, "\n"), nil
}
