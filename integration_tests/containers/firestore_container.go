package containers

import (
	"context"
	"fmt"
	"log"

	tcfirestore "github.com/testcontainers/testcontainers-go/modules/gcloud/firestore"
)

// FirestoreProjectID is the project the emulator container serves.
const FirestoreProjectID = "wordle-test"

// SetupFirestoreContainer starts the Firestore emulator and returns it with its
// host:port, suitable for FIRESTORE_EMULATOR_HOST. The caller terminates the container.
func SetupFirestoreContainer(ctx context.Context) (*tcfirestore.Container, string, error) {
	firestoreContainer, err := tcfirestore.Run(ctx,
		"gcr.io/google.com/cloudsdktool/cloud-sdk:513.0.0-emulators",
		tcfirestore.WithProjectID(FirestoreProjectID),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start Firestore emulator: %w", err)
	}

	host := firestoreContainer.URI()
	log.Printf("Firestore emulator started and ready. Host: %s", host)
	return firestoreContainer, host, nil
}
