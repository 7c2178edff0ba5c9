package memory_test

import (
	"testing"

	"github.com/aretw0/sfsweb/pkg/adapters/memory"
	"github.com/aretw0/sfsweb/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunStatusStoreContract(t, store)
}
