package service

import (
	"weatherdash.app/models"
	"weatherdash.app/session"
)

// ExplorerServiceInterface defines the interface for the data explorer pipeline
type ExplorerServiceInterface interface {
	Explore(req *models.ExploreRequest) (*models.ExploreResponse, error)
}

// ChatServiceInterface defines the interface for chatbot operations
type ChatServiceInterface interface {
	NewSession() *session.Session
	Transcript(sessionID string) ([]models.ChatTurn, error)
	EndSession(sessionID string) error
	Ask(sessionID string, req *models.AskRequest) (*models.AskResponse, error)
}

// Ensure implementations satisfy interfaces
var _ ExplorerServiceInterface = (*ExplorerService)(nil)
var _ ChatServiceInterface = (*ChatService)(nil)
