package pkg

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

const roomIDBytes = 4 // 8 hex characters

// GenerateRoomID - mints a short shareable room id.
func GenerateRoomID() string {
	buf := make([]byte, roomIDBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the platform entropy source is broken
		panic(err)
	}

	return hex.EncodeToString(buf)
}

// GenerateParticipantID - mints an opaque participant identity.
func GenerateParticipantID() string {
	return uuid.NewString()
}
