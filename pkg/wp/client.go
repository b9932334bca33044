package wp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sitescan/pkg/domain"
	"sitescan/pkg/serrors"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "sitescan/pkg/wp"

// Options configures a Client.
type Options struct {
	// RESTRoot is the absolute URL of the site's REST API root, e.g.
	// https://example.com/wp-json.
	RESTRoot string
	// OptionsRestPath is the REST path of the options resource.
	OptionsRestPath string
	// Username and AppPassword, when set, are sent as basic auth credentials.
	Username    string
	AppPassword string
	// UserAgent overrides the default Go user agent.
	UserAgent string
}

// Client talks to a WordPress site and fulfills URLSource, Validator and
// OptionsAPI. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to the site
	options    Options
	tracer     trace.Tracer
}

// Ensure Client conforms to the collaborator interfaces at compile time.
var (
	_ URLSource  = (*Client)(nil)
	_ Validator  = (*Client)(nil)
	_ OptionsAPI = (*Client)(nil)
)

// New constructs a Client that uses the provided http.Client to talk to the
// site described by options.
func New(httpClient *http.Client, options Options) *Client {
	return &Client{
		httpClient: httpClient,
		options:    options,
		tracer:     otel.Tracer(tracerName),
	}
}

// ScannableURLs fetches the scannable URLs resource. When the site paginates
// the collection (X-WP-TotalPages > 1) every page is fetched in order and the
// results are concatenated.
func (c *Client) ScannableURLs(ctx context.Context, query ScannableURLsQuery) ([]domain.ScannableURL, error) {
	ctx, span := c.tracer.Start(ctx, "wp.ScannableURLs",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("wp.rest_path", query.Path)))
	defer span.End()

	endpoint, err := ResolveRESTPath(c.options.RESTRoot, query.Path)
	if err != nil {
		return nil, endSpan(span, err)
	}

	args := url.Values{}
	if len(query.Fields) > 0 {
		args.Set("_fields", strings.Join(query.Fields, ","))
	}
	if query.LimitPerType > 0 {
		args.Set("limit_per_type", strconv.Itoa(query.LimitPerType))
	}
	for _, conditional := range query.IncludeConditionals {
		args.Add("include_conditionals[]", conditional)
	}

	var (
		out        []domain.ScannableURL
		totalPages = 1
	)
	for page := 1; page <= totalPages; page++ {
		if page > 1 {
			args.Set("page", strconv.Itoa(page))
		}
		pageURL, err := AddQueryArgs(endpoint, args)
		if err != nil {
			return nil, endSpan(span, err)
		}

		resp, body, err := c.do(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, endSpan(span, fmt.Errorf("could not fetch scannable urls: %w", err))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, endSpan(span, fmt.Errorf("could not fetch scannable urls: %w", decodeResponseError(resp.StatusCode, body)))
		}

		var urls []domain.ScannableURL
		if err := json.Unmarshal(body, &urls); err != nil {
			return nil, endSpan(span, fmt.Errorf("could not decode scannable urls: %w", err))
		}
		out = append(out, urls...)

		if page == 1 {
			if n, err := strconv.Atoi(resp.Header.Get("X-WP-TotalPages")); err == nil && n > 1 {
				totalPages = n
			}
		}
	}

	span.SetAttributes(attribute.Int("wp.scannable_urls", len(out)))

	return out, nil
}

// ValidateArgs builds the query arguments the validation endpoint expects.
// Flags that are off are left out rather than sent as false.
func ValidateArgs(req ValidateRequest) url.Values {
	args := url.Values{}
	if req.AMPFirst {
		args.Set("amp-first", "true")
	}
	if req.Cache {
		args.Set("amp_validate[cache]", "true")
	}
	args.Set("amp_validate[nonce]", req.Nonce)
	if req.OmitStylesheets {
		args.Set("amp_validate[omit_stylesheets]", "true")
	}
	if req.CacheBust != "" {
		args.Set("amp_validate[cache_bust]", req.CacheBust)
	}

	return args
}

// Validate requests validation of a single URL. On a 2xx answer the body is
// decoded into a ValidateResult; a non-2xx answer yields a *ResponseError
// carrying the REST error code when the body had one.
func (c *Client) Validate(ctx context.Context, req ValidateRequest) (*ValidateResult, error) {
	ctx, span := c.tracer.Start(ctx, "wp.Validate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("wp.url", req.URL), attribute.Bool("wp.cache", req.Cache)))
	defer span.End()

	target, err := AddQueryArgs(req.URL, ValidateArgs(req))
	if err != nil {
		return nil, endSpan(span, err)
	}

	resp, body, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, endSpan(span, fmt.Errorf("could not validate url: %w", err))
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, endSpan(span, decodeResponseError(resp.StatusCode, body))
	}

	res, err := DecodeValidateResult(body)
	if err != nil {
		return nil, endSpan(span, fmt.Errorf("could not decode validate response: %w", err))
	}
	span.SetAttributes(attribute.Int("wp.validation_errors", len(res.ValidationErrors)))

	return res, nil
}

// Options fetches the stored options.
func (c *Client) Options(ctx context.Context) (domain.Options, error) {
	ctx, span := c.tracer.Start(ctx, "wp.Options", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	endpoint, err := ResolveRESTPath(c.options.RESTRoot, c.options.OptionsRestPath)
	if err != nil {
		return nil, endSpan(span, err)
	}

	resp, body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, endSpan(span, fmt.Errorf("could not fetch options: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, endSpan(span, fmt.Errorf("could not fetch options: %w", decodeResponseError(resp.StatusCode, body)))
	}

	var opts domain.Options
	if err := json.Unmarshal(body, &opts); err != nil {
		return nil, endSpan(span, fmt.Errorf("could not decode options: %w", err))
	}

	return opts, nil
}

// UpdateOptions posts updates to the options resource and returns the options
// as stored afterwards.
func (c *Client) UpdateOptions(ctx context.Context, updates domain.Options) (domain.Options, error) {
	ctx, span := c.tracer.Start(ctx, "wp.UpdateOptions", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	endpoint, err := ResolveRESTPath(c.options.RESTRoot, c.options.OptionsRestPath)
	if err != nil {
		return nil, endSpan(span, err)
	}

	payload, err := json.Marshal(updates)
	if err != nil {
		return nil, endSpan(span, fmt.Errorf("could not marshal options: %w", err))
	}

	resp, body, err := c.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return nil, endSpan(span, fmt.Errorf("could not update options: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, endSpan(span, fmt.Errorf("could not update options: %w", decodeResponseError(resp.StatusCode, body)))
	}

	var opts domain.Options
	if err := json.Unmarshal(body, &opts); err != nil {
		return nil, endSpan(span, fmt.Errorf("could not decode options: %w", err))
	}

	return opts, nil
}

// do sends a request and reads the whole response body.
func (c *Client) do(ctx context.Context, method, target string, payload []byte) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.options.UserAgent != "" {
		req.Header.Set("User-Agent", c.options.UserAgent)
	}
	if c.options.Username != "" {
		req.SetBasicAuth(c.options.Username, c.options.AppPassword)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, serrors.Wrap(serrors.ErrTimeout, err, "request aborted")
		}

		return nil, nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read response body: %w", err)
	}

	return resp, b, nil
}

// endSpan records err on span and returns it unchanged.
func endSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	return err
}
