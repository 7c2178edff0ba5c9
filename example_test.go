package sfsweb_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/aretw0/sfsweb"
	"github.com/aretw0/sfsweb/pkg/adapters/memory"
	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/ports"
)

// ExampleNew submits a search and reads the resulting status board.
func ExampleNew() {
	// Stand-in for the SFS client.
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	client, err := sfsweb.New(backend.URL, sfsweb.WithStore(memory.NewStore(), "example"))
	if err != nil {
		log.Fatal(err)
	}

	out, err := client.Search(context.Background(), "holiday photos")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(out.Kind)
	fmt.Println(client.Board().Snapshot().Location)
	// Output:
	// success
	// /search?searchQuery=holiday+photos
}

// ExampleClient_EmptyRecycleBin shows a declined confirmation: no call is made
// and the board returns to the home page.
func ExampleClient_EmptyRecycleBin() {
	client, err := sfsweb.New("http://localhost:8080",
		sfsweb.WithConfirmer(ports.ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
			return false, nil
		})),
	)
	if err != nil {
		log.Fatal(err)
	}

	_, err = client.EmptyRecycleBin(context.Background())
	fmt.Println(errors.Is(err, domain.ErrDeclined))
	fmt.Println(client.Board().Snapshot().Location)
	// Output:
	// true
	// /
}
