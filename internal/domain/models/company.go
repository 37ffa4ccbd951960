package models

// CompanyDetails maps a normalized label (e.g., "DÍV_LÍQUIDA_PL") to the raw
// text shown next to it on the provider's details page.
//
// Labels are discovered from the page, so there is no fixed schema.
type CompanyDetails map[string]string
