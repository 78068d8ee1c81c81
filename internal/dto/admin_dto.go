package dto

import "github.com/google/uuid"

type SubmitVerificationRequest struct {
	ProfileID       uuid.UUID         `json:"profile_id"`
	SocialPlatforms map[string]string `json:"social_platforms"`
	ProofImages     []string          `json:"proof_images"`
}

type DecideVerificationRequest struct {
	Outcome string `json:"outcome"` // verified | rejected
}

type TransitionRequest struct {
	Status string `json:"status"`
}

type EditArtistRequest struct {
	FullName   *string  `json:"full_name"`
	Categories []string `json:"categories"`
	Status     *string  `json:"status"`
}

type FeatureRequest struct {
	IsFeatured bool `json:"is_featured"`
}

type CreateAdminRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type EditAdminRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Status   *string `json:"status"`
}

type CreateNoteRequest struct {
	Content string `json:"content"`
}

type PurgeRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type SendEmailRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}
