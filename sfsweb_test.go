package sfsweb_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sfsweb"
	"github.com/aretw0/sfsweb/internal/testutils"
	"github.com/aretw0/sfsweb/pkg/actions"
	"github.com/aretw0/sfsweb/pkg/adapters/memory"
	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/ports"
)

func newClient(t *testing.T, opts ...sfsweb.Option) (*sfsweb.Client, *testutils.Backend) {
	t.Helper()
	backend := testutils.NewBackend(t)
	opts = append([]sfsweb.Option{sfsweb.WithHealthURL(backend.URL + "/health")}, opts...)
	client, err := sfsweb.New(backend.URL, opts...)
	require.NoError(t, err)
	return client, backend
}

func answer(yes bool) ports.Confirmer {
	return ports.ConfirmFunc(func(context.Context, string) (bool, error) { return yes, nil })
}

func TestSettings(t *testing.T) {
	in := actions.SettingsInput{LocalBackup: true, BackupDir: "/backups", Port: "9000", BufferSize: "500"}

	t.Run("success", func(t *testing.T) {
		client, backend := newClient(t)

		out, err := client.UpdateSettings(context.Background(), in)
		require.NoError(t, err)
		assert.True(t, out.OK())

		req := backend.Last(t)
		assert.Equal(t, "application/json", req.ContentType)
		assert.Equal(t, `{"CLIENT_LOCAL_BACKUP":true,"CLIENT_BACKUP_DIR":"/backups","CLIENT_PORT":"9000","EVENT_BUFFER_SIZE":"500"}`, req.Body)

		snap := client.Board().Snapshot()
		require.NotNil(t, snap.Notice)
		assert.Equal(t, "Settings updated successfully", snap.Notice.Text)
		assert.Equal(t, domain.ToneSuccess, snap.Notice.Tone)
		assert.Equal(t, domain.HomeLocation, snap.Location)
	})

	t.Run("server error", func(t *testing.T) {
		client, backend := newClient(t)
		backend.Respond(http.MethodPost, "/settings", http.StatusInternalServerError, "")

		out, err := client.UpdateSettings(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeServerError, out.Kind)

		snap := client.Board().Snapshot()
		require.NotNil(t, snap.Notice)
		assert.Contains(t, snap.Notice.Text, "500")
		assert.Equal(t, "500: Internal Server Error", snap.Notice.Text)
		assert.Equal(t, domain.ToneError, snap.Notice.Tone)
		assert.Equal(t, domain.HomeLocation, snap.Location)
	})
}

func TestEmptyRecycleBin(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		client, backend := newClient(t, sfsweb.WithConfirmer(answer(false)))
		_, err := client.Search(context.Background(), "x")
		require.NoError(t, err)
		require.NotEqual(t, domain.HomeLocation, client.Board().Snapshot().Location)

		_, err = client.EmptyRecycleBin(context.Background())
		assert.ErrorIs(t, err, domain.ErrDeclined)
		for _, req := range backend.Requests() {
			assert.NotEqual(t, "/empty", req.Path)
		}
		assert.Equal(t, domain.HomeLocation, client.Board().Snapshot().Location)
	})

	t.Run("no confirmer declines", func(t *testing.T) {
		client, backend := newClient(t)
		_, err := client.EmptyRecycleBin(context.Background())
		assert.ErrorIs(t, err, domain.ErrDeclined)
		assert.Zero(t, backend.Count())
	})

	t.Run("accepted", func(t *testing.T) {
		var prompt string
		client, backend := newClient(t, sfsweb.WithConfirmer(ports.ConfirmFunc(func(_ context.Context, p string) (bool, error) {
			prompt = p
			return true, nil
		})))

		out, err := client.EmptyRecycleBin(context.Background())
		require.NoError(t, err)
		assert.True(t, out.OK())
		assert.Equal(t, actions.EmptyBinPrompt, prompt)
		req := backend.Last(t)
		assert.Equal(t, http.MethodDelete, req.Method)
		assert.Equal(t, "/empty", req.Path)
		assert.Equal(t, "/recycled", client.Board().Snapshot().Location)
	})

	t.Run("confirmer error", func(t *testing.T) {
		client, backend := newClient(t, sfsweb.WithConfirmer(ports.ConfirmFunc(func(context.Context, string) (bool, error) {
			return false, errors.New("stdin closed")
		})))
		_, err := client.EmptyRecycleBin(context.Background())
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrDeclined)
		assert.Zero(t, backend.Count())
	})
}

func TestRedirectTargets(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	_, err := client.Discover(ctx, "/data")
	require.NoError(t, err)
	snap := client.Board().Snapshot()
	assert.Equal(t, domain.HomeLocation, snap.Location, "discover success does not navigate")
	require.NotNil(t, snap.Notice)
	assert.Equal(t, "Folder added successfully", snap.Notice.Text)

	out := client.EditProfile(ctx, actions.ProfileInput{Name: "Ada", Username: "ada", Email: "ada@example.com"})
	require.True(t, out.OK())
	assert.Equal(t, "/user", client.Board().Snapshot().Location)

	_, err = client.DeleteFile(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, domain.HomeLocation, client.Board().Snapshot().Location)

	_, err = client.Search(ctx, "holiday photos")
	require.NoError(t, err)
	assert.Equal(t, "/search?searchQuery=holiday+photos", client.Board().Snapshot().Location)

	_, err = client.OpenLocation(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "/files/i/12", client.Board().Snapshot().Location)
}

func TestBlankInputsNeverCallBackend(t *testing.T) {
	client, backend := newClient(t)
	ctx := context.Background()

	checks := []struct {
		name string
		run  func() error
		msg  string
	}{
		{"upload", func() error { _, err := client.Upload(ctx, actions.UploadInput{DestFolder: "/d"}); return err }, "Please select a file to upload."},
		{"add-new", func() error { _, err := client.AddNew(ctx, ""); return err }, "please select a path to a file or folder"},
		{"discover", func() error { _, err := client.Discover(ctx, "  "); return err }, "Please select a folder to add"},
		{"upload-pfp", func() error { _, err := client.UploadProfilePicture(ctx, actions.PictureInput{}); return err }, "Please select a picture to upload."},
		{"search", func() error { _, err := client.Search(ctx, ""); return err }, "Please enter a search query."},
		{"delete-file", func() error { _, err := client.DeleteFile(ctx, ""); return err }, "Please select a file."},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			err := c.run()
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, c.msg, verr.Message)
			snap := client.Board().Snapshot()
			require.NotNil(t, snap.Notice)
			assert.Equal(t, c.msg, snap.Notice.Text)
			assert.Equal(t, domain.ToneError, snap.Notice.Tone)
			assert.Empty(t, snap.Alert)
		})
	}
	assert.Zero(t, backend.Count())
}

func TestUploadShowsBusyAndMessage(t *testing.T) {
	client, backend := newClient(t)
	release := backend.Hold(http.MethodPost, "/upload")
	defer release()

	done := make(chan domain.Outcome, 1)
	go func() {
		out, _ := client.Upload(context.Background(), actions.UploadInput{
			File:       strings.NewReader("report"),
			Filename:   "report.pdf",
			DestFolder: "/docs",
		})
		done <- out
	}()

	<-backend.Entered()
	assert.True(t, client.Board().Snapshot().IsBusy(actions.BusyUpload))

	// A second trigger while the first is in flight is refused without a call.
	second, err := client.Upload(context.Background(), actions.UploadInput{
		File:       strings.NewReader("report"),
		Filename:   "report.pdf",
		DestFolder: "/docs",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSuppressed, second.Kind)

	release()
	out := <-done
	assert.True(t, out.OK())
	assert.Equal(t, 1, backend.Count())

	snap := client.Board().Snapshot()
	assert.False(t, snap.IsBusy(actions.BusyUpload))
	require.NotNil(t, snap.Notice)
	assert.Equal(t, "File(s) uploaded successfully.", snap.Notice.Text)
}

func TestUploadProfilePicture_DecodesResult(t *testing.T) {
	client, backend := newClient(t)
	backend.Respond(http.MethodPost, "/user/upload-pfp", http.StatusOK, `{"imageUrl":"/static/pfp/me.png"}`)

	out, err := client.UploadProfilePicture(context.Background(), actions.PictureInput{Image: strings.NewReader("png"), Filename: "me.png"})
	require.NoError(t, err)
	assert.Equal(t, actions.PictureResult{ImageURL: "/static/pfp/me.png"}, out.Body)
	assert.Equal(t, "/user", client.Board().Snapshot().Location)
	assert.Equal(t, "me.png", backend.Last(t).Files["file"].Filename)
}

func TestClearProfilePicture_Alert(t *testing.T) {
	client, backend := newClient(t)
	backend.Respond(http.MethodPost, "/user/clear-pfp", http.StatusBadGateway, "")

	out := client.ClearProfilePicture(context.Background())
	assert.Equal(t, domain.OutcomeServerError, out.Kind)
	assert.Equal(t, "Failed to clear profile picture: 502: Bad Gateway", client.Board().Snapshot().Alert)
}

func TestCheckStatus(t *testing.T) {
	client, backend := newClient(t)

	assert.Equal(t, domain.ConnectivityOnline, client.CheckStatus(context.Background()))
	assert.Equal(t, domain.ConnectivityOnline, client.CheckStatus(context.Background()))

	backend.Close()
	assert.Equal(t, domain.ConnectivityOffline, client.CheckStatus(context.Background()))
	assert.Equal(t, domain.ConnectivityOffline, client.Board().Snapshot().Connectivity)
}

func TestPersistentBoard(t *testing.T) {
	store := memory.NewStore()
	backend := testutils.NewBackend(t)

	first, err := sfsweb.New(backend.URL, sfsweb.WithStore(store, "me"))
	require.NoError(t, err)
	_, err = first.Search(context.Background(), "cats")
	require.NoError(t, err)

	second, err := sfsweb.New(backend.URL, sfsweb.WithStore(store, "me"))
	require.NoError(t, err)
	require.NoError(t, second.Restore(context.Background()))
	assert.Equal(t, "/search?searchQuery=cats", second.Board().Snapshot().Location)
}
