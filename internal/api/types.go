package api

import (
	"context"

	"github.com/shivam1584818/fb-group-finder-backend/internal/models"
)

// Scanner runs one scan for a target URL
type Scanner interface {
	Scan(ctx context.Context, target string) (*models.ScanResult, error)
}

// AdmissionGuard refuses work when the host cannot take another scan
type AdmissionGuard interface {
	Admit() error
}

// ScanRequest is the body of POST /scan
type ScanRequest struct {
	PostURL string `json:"postUrl" binding:"required"`
}

// ErrorResponse is returned for every non-2xx response
type ErrorResponse struct {
	Message string `json:"message"`
}
