package memory

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"archipelago/internal/snapshot/store/storetest"
)

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &storetest.Suite{NewStore: func() storetest.Store { return New() }})
}
