// config/db.go
package config

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
)

// Firestore collection names
const (
	StreamersCollection   = "streamers"
	CommissionsCollection = "commissions"
	AgenciesCollection    = "agencies"
	UsersCollection       = "users"
	ReportsCollection     = "reports"
)

// ConnectDB obtains the Firestore client from the Firebase app. InitFirebase
// must have been called first.
func ConnectDB() *firestore.Client {
	if FirebaseApp == nil {
		log.Fatal("Firebase app not initialized, call InitFirebase first")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := FirebaseApp.Firestore(ctx)
	if err != nil {
		log.Fatal("Firestore connection error:", err)
	}

	log.Println("Connected to Firestore")

	return client
}
