package dto

// ScanRequest carries a base64 invoice image (a data: URI prefix is accepted).
type ScanRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mimeType"`
	Save     bool   `json:"save"`
}

// ScanResponse returns the extracted candidate. ID is set only when saved.
type ScanResponse struct {
	Data  TaxRecordResponse `json:"data"`
	Saved bool              `json:"saved"`
}
