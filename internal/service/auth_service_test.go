package service

import (
	"testing"

	"github.com/debtwise/debtwise-backend/internal/domain"
	"github.com/debtwise/debtwise-backend/internal/testutil"
)

func TestAuthenticateUser_NewUser(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository(userRepo)
	authService := NewAuthService(userRepo, workspaceRepo)

	name := "Test User"
	result, err := authService.AuthenticateUser("auth0|12345", "test@example.com", &name)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !result.IsNewUser {
		t.Error("Expected IsNewUser to be true for new user")
	}
	if result.User.Auth0ID != "auth0|12345" {
		t.Errorf("Expected auth0ID auth0|12345, got %s", result.User.Auth0ID)
	}
	if result.Workspace == nil {
		t.Fatal("Expected workspace, got nil")
	}
	if result.Workspace.Name != "Personal" {
		t.Errorf("Expected workspace name 'Personal', got %s", result.Workspace.Name)
	}
}

func TestAuthenticateUser_ExistingUser(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository(userRepo)
	authService := NewAuthService(userRepo, workspaceRepo)

	user, err := userRepo.CreateOrGetByAuth0ID("auth0|existing", "existing@example.com", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := workspaceRepo.Create(&domain.Workspace{UserID: user.ID, Name: "Personal"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	result, err := authService.AuthenticateUser("auth0|existing", "existing@example.com", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.IsNewUser {
		t.Error("Expected IsNewUser to be false for existing user")
	}
	if result.User.ID != user.ID {
		t.Errorf("Expected user ID %s, got %s", user.ID, result.User.ID)
	}
}

func TestGetWorkspaceByAuth0ID(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository(userRepo)
	authService := NewAuthService(userRepo, workspaceRepo)

	user, err := userRepo.CreateOrGetByAuth0ID("auth0|ws", "ws@example.com", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	created, err := workspaceRepo.Create(&domain.Workspace{UserID: user.ID, Name: "Personal"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	workspace, err := authService.GetWorkspaceByAuth0ID("auth0|ws")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if workspace.ID != created.ID {
		t.Errorf("Expected workspace ID %d, got %d", created.ID, workspace.ID)
	}

	if _, err := authService.GetWorkspaceByAuth0ID("auth0|unknown"); err != domain.ErrWorkspaceNotFound {
		t.Errorf("Expected ErrWorkspaceNotFound, got %v", err)
	}
}
