package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deemkeen/letterdesk/domain"
	"github.com/deemkeen/letterdesk/util"
)

// QuestionPath is the archive resource prefix; the letter id is appended.
const QuestionPath = "/member/my/archive/question/"

var (
	ErrNotFound  = errors.New("letter not found")
	ErrMissingId = errors.New("missing letter id")
	ErrInvalidId = errors.New("invalid letter id")
)

// StatusError is returned for any non-2xx answer other than 404.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

// Client talks to the member archive API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	loc     *time.Location
}

func NewClient(baseURL, token string, timeout time.Duration, loc *time.Location) *Client {
	if loc == nil {
		loc = time.Local
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		loc:     loc,
	}
}

func NewClientFromConfig(conf *util.AppConfig) *Client {
	return NewClient(conf.Conf.ArchiveBaseURL, conf.Conf.ArchiveToken, conf.RequestTimeout(), conf.Location())
}

func questionPath(letterId string) (string, error) {
	if letterId == "" {
		return "", ErrMissingId
	}
	if ok, msg := util.IsValidLetterId(letterId); !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidId, msg)
	}
	return QuestionPath + url.PathEscape(letterId), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", util.GetNameAndVersion())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	return nil, &StatusError{Method: req.Method, Path: req.URL.Path, Code: resp.StatusCode}
}

// GetLetter fetches one letter by id.
func (c *Client) GetLetter(ctx context.Context, letterId string) (*domain.Letter, error) {
	path, err := questionPath(letterId)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info QuestionInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode letter %s: %w", letterId, err)
	}
	letter := info.ToLetter(letterId, c.loc)
	return &letter, nil
}

// DeleteLetter removes a letter by id.
func (c *Client) DeleteLetter(ctx context.Context, letterId string) error {
	path, err := questionPath(letterId)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, path)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	return resp.Body.Close()
}
