package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"safyscore/trust"
)

const whoisXMLBaseURL = "https://www.whoisxmlapi.com/whoisserver/WhoisService"

// WhoisXML looks registrations up through the WHOIS XML API.
type WhoisXML struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewWhoisXML returns a WhoisXML client with the given request timeout.
func NewWhoisXML(apiKey string, timeout time.Duration) *WhoisXML {
	return &WhoisXML{
		APIKey:     apiKey,
		BaseURL:    whoisXMLBaseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type whoisXMLResponse struct {
	WhoisRecord  *whoisXMLRecord `json:"WhoisRecord"`
	ErrorMessage *struct {
		ErrorCode string `json:"errorCode"`
		Msg       string `json:"msg"`
	} `json:"ErrorMessage"`
}

type whoisXMLRecord struct {
	CreatedDateNormalized string        `json:"createdDateNormalized"`
	CreatedDate           string        `json:"createdDate"`
	RegistrarName         string        `json:"registrarName"`
	Privacy               looseBool     `json:"privacy"`
	RegistryData          *registryData `json:"registryData"`
}

type registryData struct {
	CreatedDateNormalized string `json:"createdDateNormalized"`
	CreatedDate           string `json:"createdDate"`
	RegistrarName         string `json:"registrarName"`
}

// looseBool accepts true/false as JSON booleans or strings. Anything else is false.
type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	v := strings.ToLower(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	*b = looseBool(v == "true" || v == "yes" || v == "1")
	return nil
}

func (c *WhoisXML) LookupRegistration(ctx context.Context, host string) (*trust.Registration, error) {
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("apiKey", c.APIKey)
	q.Set("domainName", host)
	q.Set("outputFormat", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("whoisxml request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whoisxml: %w", redactKey(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("whoisxml error: %v", resp.Status)
	}

	var data whoisXMLResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("whoisxml decode: %w", err)
	}
	if data.ErrorMessage != nil {
		return nil, fmt.Errorf("whoisxml error %s: %s", data.ErrorMessage.ErrorCode, data.ErrorMessage.Msg)
	}
	if data.WhoisRecord == nil {
		return nil, ErrNoRecord
	}

	return data.WhoisRecord.registration(), nil
}

// redactKey masks the apiKey parameter in the URL carried by a transport error.
func redactKey(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	u, perr := url.Parse(uerr.URL)
	if perr != nil {
		uerr.URL = "<redacted>"
		return err
	}
	q := u.Query()
	if q.Has("apiKey") {
		q.Set("apiKey", "REDACTED")
		u.RawQuery = q.Encode()
	}
	uerr.URL = u.String()
	return err
}

func (r *whoisXMLRecord) registration() *trust.Registration {
	reg := &trust.Registration{
		CreatedAt: parseDate(firstNonEmpty(r.CreatedDateNormalized, r.CreatedDate)),
		Privacy:   bool(r.Privacy),
		Registrar: strings.TrimSpace(r.RegistrarName),
	}

	if rd := r.RegistryData; rd != nil {
		if reg.CreatedAt.IsZero() {
			reg.CreatedAt = parseDate(firstNonEmpty(rd.CreatedDateNormalized, rd.CreatedDate))
		}
		if reg.Registrar == "" {
			reg.Registrar = strings.TrimSpace(rd.RegistrarName)
		}
	}

	return reg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
