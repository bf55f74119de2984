package models

// ValidateRequest is the payload sent to the license server when a packaged
// executable checks its key.
type ValidateRequest struct {
	LicenseKey  string `json:"license_key"`
	HWID        string `json:"hwid"`
	MachineName string `json:"machine_name"`
	Nonce       string `json:"nonce"`
	Timestamp   int64  `json:"timestamp"`
}

// ValidateResponse is the server's verdict on a license key.
type ValidateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// IssueRequest asks the license server to mint keys for a build.
type IssueRequest struct {
	Product  string `json:"product"`
	Count    int    `json:"count"`
	DemoMode bool   `json:"demo_mode"`
	Duration int    `json:"duration,omitempty"`
}

// IssueResponse carries the minted keys.
type IssueResponse struct {
	Status string   `json:"status"`
	Keys   []string `json:"keys"`
}

// ServerError is the license server's error envelope.
type ServerError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
