package memory_test

import (
	"testing"

	"github.com/olstudio/olstudio/pkg/adapters/memory"
	"github.com/olstudio/olstudio/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSessionStoreContract(t, store)
}
