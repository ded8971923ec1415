// sample implementation, do not build or test
//go:build ignore

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	OriginalPrice *float64 `json:"original_price"`
	CurrentPrice  *float64 `json:"current_price"`
	ImageURL      *string  `json:"image_url"`
	PurchaseLink  string   `json:"purchase_link"`
	InquiryLink   string   `json:"inquiry_link"`
	CreatedAt     string   `json:"created_at"`
	IsRecommended bool     `json:"is_recommended"`
}

type Catalog struct {
	Promoted  []Product `json:"promoted"`
	Remaining []Product `json:"remaining"`
}

type AppLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

func getJSON(url, userAgent string, dest any) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%s: %d %s", url, resp.StatusCode, e.Error)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

// FetchCatalog returns the promoted products and the rest of the catalog.
func FetchCatalog(baseURL string) (*Catalog, error) {
	var c Catalog
	if err := getJSON(baseURL+"/api/v1/catalog", "", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// FetchAppLink asks the server which store a device should be sent to.
func FetchAppLink(baseURL, userAgent string) (*AppLink, error) {
	var l AppLink
	if err := getJSON(baseURL+"/api/v1/app-link", userAgent, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func main() {
	baseURL := "http://localhost:8080"
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}

	c, err := FetchCatalog(baseURL)
	if err != nil {
		fmt.Println("catalog:", err)
		os.Exit(1)
	}
	fmt.Printf("%d promoted, %d remaining\n", len(c.Promoted), len(c.Remaining))
	for _, p := range c.Promoted {
		fmt.Printf("  * %s (%s)\n", p.Name, p.ID)
	}

	l, err := FetchAppLink(baseURL, "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X)")
	if err != nil {
		fmt.Println("app link:", err)
		os.Exit(1)
	}
	fmt.Printf("%s -> %s\n", l.Platform, l.URL)
}
