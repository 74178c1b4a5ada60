package dto

import "github.com/Conte777/brewquest/internal/domain/approval/entities"

type SubmitRequest struct {
	ContentType string `json:"content_type"`
	ContentRef  string `json:"content_ref"`
}

type ReviewRequest struct {
	Reviewer string `json:"reviewer"`
	Notes    string `json:"notes"`
}

type ListResponse struct {
	Count     int                 `json:"count"`
	Approvals []entities.Approval `json:"approvals"`
}
