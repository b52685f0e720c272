package core

import (
	"fmt"
	"math/rand"
)

// randomVisitorName generates a throwaway display name for a visitor who
// joined without one.
func randomVisitorName() string {
	return fmt.Sprintf("User-%d", 1000+rand.Intn(9000))
}
