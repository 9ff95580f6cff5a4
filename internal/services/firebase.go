package services

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	// FirebaseApp is the Firebase app instance
	FirebaseApp *firebase.App
	// AuthClient verifies Firebase ID tokens. Nil when Firebase is not
	// configured; the auth middleware then falls back to local JWTs.
	AuthClient *auth.Client
)

// InitFirebase initializes the Firebase Admin SDK and its auth client.
func InitFirebase() error {
	ctx := context.Background()

	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountPath == "" {
		log.Println("Warning: FIREBASE_SERVICE_ACCOUNT_PATH not set. Firebase token verification disabled.")
		return nil
	}

	opt := option.WithCredentialsFile(serviceAccountPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("error getting auth client: %v", err)
	}

	FirebaseApp = app
	AuthClient = client

	log.Println("Firebase token verification initialized successfully")
	return nil
}

// VerifyIDToken decodes a bearer token into the principal's email.
func VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	if AuthClient == nil {
		return "", fmt.Errorf("firebase auth not initialized")
	}

	decoded, err := AuthClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}

	email, _ := decoded.Claims["email"].(string)
	if email == "" {
		return "", fmt.Errorf("token has no email claim")
	}
	return email, nil
}
