package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// SocialLinks are a vendor's public social profiles.
type SocialLinks struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Website   string `json:"website"`
}

// VendorProfile is a vendor's public business record. The subcategory
// fields are comma-joined lists, one per category axis.
type VendorProfile struct {
	Logo                string       `json:"logo,omitempty"`
	Category            string       `json:"category"`
	SubCategory1        string       `json:"sub_category_1"`
	SubCategory2        string       `json:"sub_category_2"`
	SubCategory3        string       `json:"sub_category_3"`
	Description         string       `json:"description"`
	BusinessName        string       `json:"business_name"`
	AverageProjectValue float64      `json:"average_project_value"`
	NumberOfEmployees   int          `json:"number_of_employees"`
	ProjectsCompleted   int          `json:"projects_completed"`
	Mobile              string       `json:"mobile"`
	Email               string       `json:"email"`
	City                string       `json:"city"`
	State               string       `json:"state,omitempty"`
	Social              *SocialLinks `json:"social,omitempty"`
}

// Project is one portfolio entry; images are grouped by named space.
type Project struct {
	Images       map[string][]string `json:"images"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	City         string              `json:"city"`
	State        string              `json:"state"`
	SubCategory1 string              `json:"sub_category_1"`
	SubCategory2 string              `json:"sub_category_2"`
	StartDate    string              `json:"start_date"`
	EndDate      string              `json:"end_date"`
}

// OnboardRequest creates or updates a vendor profile. Numeric fields are
// numbers on the wire; the category axes are comma-joined strings.
type OnboardRequest struct {
	BusinessName        string      `json:"business_name"`
	Address             string      `json:"address"`
	SubCategory1        string      `json:"sub_category_1"`
	SubCategory2        string      `json:"sub_category_2"`
	SubCategory3        string      `json:"sub_category_3"`
	Category            string      `json:"category"`
	StartedIn           string      `json:"started_in"`
	NumberOfEmployees   int         `json:"number_of_employees"`
	AverageProjectValue float64     `json:"average_project_value"`
	ProjectsCompleted   int         `json:"projects_completed"`
	City                string      `json:"city"`
	State               string      `json:"state"`
	Description         string      `json:"description"`
	Social              SocialLinks `json:"social"`
}

// Review is a submitted review. The rating fields must marshal as
// numbers, never strings.
type Review struct {
	VendorID        int    `json:"vendor_id"`
	RatingQuality   int    `json:"rating_quality"`
	RatingExecution int    `json:"rating_execution"`
	RatingBehaviour int    `json:"rating_behaviour"`
	Title           string `json:"title"`
	Body            string `json:"body"`
}

// Onboard submits a vendor profile and returns the replacement access
// token reflecting the user's new vendor status.
func (c *Client) Onboard(ctx context.Context, token string, req OnboardRequest) (string, error) {
	var resp TokenResponse
	if err := c.do(ctx, "vendor_onboard", http.MethodPost, "/vendor/onboard", nil, token, req, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// VendorDetails fetches a vendor's public profile by id.
func (c *Client) VendorDetails(ctx context.Context, vendorID string) (VendorProfile, error) {
	query := url.Values{"vendor_id": {vendorID}}
	var profile VendorProfile
	if err := c.doData(ctx, "vendor_details", http.MethodGet, "/vendor/details", query, "", &profile); err != nil {
		return VendorProfile{}, err
	}
	return profile, nil
}

// AuthVendorDetails fetches the authenticated user's own vendor profile.
func (c *Client) AuthVendorDetails(ctx context.Context, token string) (VendorProfile, error) {
	var profile VendorProfile
	if err := c.doData(ctx, "vendor_auth_details", http.MethodGet, "/vendor/auth/details", nil, token, &profile); err != nil {
		return VendorProfile{}, err
	}
	return profile, nil
}

// ProjectDetails fetches a vendor's public project list. A vendor with no
// projects yields an empty slice, not an error.
func (c *Client) ProjectDetails(ctx context.Context, vendorID string) ([]Project, error) {
	query := url.Values{"vendor_id": {vendorID}}
	var projects []Project
	if err := c.doData(ctx, "vendor_projects", http.MethodGet, "/vendor/project/details", query, "", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// AuthProjectDetails fetches the authenticated vendor's own project list.
func (c *Client) AuthProjectDetails(ctx context.Context, token string) ([]Project, error) {
	var projects []Project
	if err := c.doData(ctx, "vendor_auth_projects", http.MethodGet, "/vendor/auth/project/details", nil, token, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// SubmitReview posts a review against a vendor.
func (c *Client) SubmitReview(ctx context.Context, token string, review Review) error {
	return c.do(ctx, "vendor_review", http.MethodPost, "/vendor/review", nil, token, review, nil)
}

// SubcategoryList fetches the selectable options of one category axis
// (1, 2 or 3) for a top-level category.
func (c *Client) SubcategoryList(ctx context.Context, axis int, category string) ([]string, error) {
	if axis < 1 || axis > 3 {
		return nil, fmt.Errorf("[backend subcategory_list] axis must be 1..3, got %d", axis)
	}
	path := fmt.Sprintf("/category/subcategory%d/list", axis)
	query := url.Values{"category": {category}}
	var options []string
	if err := c.doData(ctx, "subcategory_list", http.MethodGet, path, query, "", &options); err != nil {
		return nil, err
	}
	return options, nil
}
