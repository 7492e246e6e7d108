package publish

// Request is a validated publish request. It lives for one publish call.
type Request struct {
	TaxonID     int64
	TaxonPlural string
	Hostname    string
}

const (
	fieldBody        = "body"
	fieldTaxonID     = "taxon_id"
	fieldTaxonPlural = "taxon_plural"
	fieldHostname    = "hostname"
)
