package actions

import (
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aretw0/sfsweb/pkg/domain"
)

// Action names.
const (
	ActionUpload       = "upload"
	ActionAddNew       = "add-new"
	ActionDiscover     = "discover"
	ActionUploadPFP    = "upload-pfp"
	ActionClearPFP     = "clear-pfp"
	ActionEditProfile  = "edit-profile"
	ActionSearch       = "search"
	ActionSettings     = "settings"
	ActionDeleteFile   = "delete-file"
	ActionOpenLocation = "open-loc"
	ActionEmptyBin     = "empty-bin"
)

// Busy indicator ids.
const (
	BusyUpload = "upload-spinner"
	BusyAdd    = "spinner"
)

// Locations the catalog navigates to.
const (
	LocationUser     = "/user"
	LocationSearch   = "/search"
	LocationRecycled = "/recycled"
)

// OpenLocationRoute is the template behind OpenLocation.
const OpenLocationRoute = "/files/i/{fileID}/open-loc"

// EmptyBinPrompt is shown before the recycle bin is emptied.
const EmptyBinPrompt = "WARNING: This will permanently delete *all* items in the SFS recycle bin. Proceed?"

// UploadInput is a file to store in a destination folder.
type UploadInput struct {
	File       io.Reader `validate:"required" msg:"Please select a file to upload."`
	Filename   string
	DestFolder string `validate:"notblank" msg:"Please select a destination folder."`
}

// PathInput is a filesystem path on the machine running the SFS client.
type PathInput struct {
	Path string `validate:"notblank"`
}

// PictureInput is a new profile picture.
type PictureInput struct {
	Image    io.Reader `validate:"required" msg:"Please select a picture to upload."`
	Filename string
}

// ProfileInput holds the editable profile fields. Blank fields are sent as-is.
type ProfileInput struct {
	Name     string
	Username string
	Email    string
}

// SearchInput is a search query.
type SearchInput struct {
	Query string `validate:"notblank" msg:"Please enter a search query."`
}

// SettingsInput is the client configuration persisted by the backend.
// Field order is the wire order.
type SettingsInput struct {
	LocalBackup bool   `json:"CLIENT_LOCAL_BACKUP"`
	BackupDir   string `json:"CLIENT_BACKUP_DIR"`
	Port        string `json:"CLIENT_PORT" validate:"omitempty,numeric" msg:"Client port must be a number."`
	BufferSize  string `json:"EVENT_BUFFER_SIZE" validate:"omitempty,numeric" msg:"Event buffer size must be a number."`
}

// FileInput identifies a file known to the backend.
type FileInput struct {
	ID string `validate:"notblank" msg:"Please select a file."`
}

// Upload stores a file in a destination folder.
func Upload(in UploadInput) (domain.Request, error) {
	if err := check(in); err != nil {
		return domain.Request{}, err
	}
	name := in.Filename
	if name == "" {
		name = "upload"
	}
	return domain.Request{
		Action:   ActionUpload,
		Endpoint: "/upload",
		Method:   domain.MethodPost,
		Payload: domain.FormPayload(
			[]domain.FormField{{Name: "destFolder", Value: in.DestFolder}},
			domain.FilePart{Field: "file", Filename: path.Base(name), Content: in.File},
		),
		Busy:      BusyUpload,
		OnSuccess: domain.ShowMessage("File(s) uploaded successfully."),
		OnFailure: domain.InlineError("Error uploading file"),
	}, nil
}

// AddNew registers an existing file or folder with the service.
func AddNew(p string) (domain.Request, error) {
	if err := checkPath(p, "please select a path to a file or folder"); err != nil {
		return domain.Request{}, err
	}
	return domain.Request{
		Action:    ActionAddNew,
		Endpoint:  "/add/new",
		Method:    domain.MethodPost,
		Payload:   domain.RawPayload(p),
		Busy:      BusyAdd,
		OnSuccess: domain.ShowMessage("Item(s) added successfully"),
		OnFailure: domain.InlineError("Error"),
	}, nil
}

// Discover asks the backend to scan a folder. Success does not navigate.
func Discover(p string) (domain.Request, error) {
	if err := checkPath(p, "Please select a folder to add"); err != nil {
		return domain.Request{}, err
	}
	return domain.Request{
		Action:    ActionDiscover,
		Endpoint:  "/add/discover",
		Method:    domain.MethodPost,
		Payload:   domain.RawPayload(p),
		OnSuccess: domain.ShowMessage("Folder added successfully"),
		OnFailure: domain.InlineError("Failed to add the folder"),
	}, nil
}

func checkPath(p, msg string) error {
	if err := check(PathInput{Path: p}); err != nil {
		return &domain.ValidationError{Field: "Path", Message: msg}
	}
	return nil
}

// UploadProfilePicture replaces the profile picture.
func UploadProfilePicture(in PictureInput) (domain.Request, error) {
	if err := check(in); err != nil {
		return domain.Request{}, err
	}
	name := in.Filename
	if name == "" {
		name = "picture"
	}
	return domain.Request{
		Action:    ActionUploadPFP,
		Endpoint:  "/user/upload-pfp",
		Method:    domain.MethodPost,
		Payload:   domain.FormPayload(nil, domain.FilePart{Field: "file", Filename: path.Base(name), Content: in.Image}),
		OnSuccess: domain.RedirectTo(LocationUser),
		OnFailure: domain.AlertError("error uploading picture"),
	}, nil
}

// ClearProfilePicture resets the profile picture.
func ClearProfilePicture() domain.Request {
	return domain.Request{
		Action:    ActionClearPFP,
		Endpoint:  "/user/clear-pfp",
		Method:    domain.MethodPost,
		OnSuccess: domain.RedirectTo(LocationUser),
		OnFailure: domain.AlertError("Failed to clear profile picture"),
	}
}

// EditProfile updates the profile fields.
func EditProfile(in ProfileInput) domain.Request {
	return domain.Request{
		Action:   ActionEditProfile,
		Endpoint: "/user/edit",
		Method:   domain.MethodPost,
		Payload: domain.FormPayload([]domain.FormField{
			{Name: "name", Value: in.Name},
			{Name: "username", Value: in.Username},
			{Name: "email", Value: in.Email},
		}),
		OnSuccess: domain.RedirectTo(LocationUser),
		OnFailure: domain.AlertError("Error"),
	}
}

// Search runs a query and then navigates to its results page.
func Search(query string) (domain.Request, error) {
	if err := check(SearchInput{Query: query}); err != nil {
		return domain.Request{}, err
	}
	return domain.Request{
		Action:    ActionSearch,
		Endpoint:  LocationSearch,
		Method:    domain.MethodPost,
		Payload:   domain.RawPayload(query),
		OnSuccess: domain.RedirectTo(SearchLocation(query)),
		OnFailure: domain.InlineError("Error"),
	}, nil
}

// SearchLocation is the results page for query.
func SearchLocation(query string) string {
	return LocationSearch + "?" + url.Values{"searchQuery": {query}}.Encode()
}

// UpdateSettings persists the client settings.
func UpdateSettings(in SettingsInput) (domain.Request, error) {
	if err := check(in); err != nil {
		return domain.Request{}, err
	}
	return domain.Request{
		Action:    ActionSettings,
		Endpoint:  "/settings",
		Method:    domain.MethodPost,
		Payload:   domain.JSONPayload(in),
		OnSuccess: domain.ShowMessage("Settings updated successfully"),
		OnFailure: domain.InlineError(""),
	}, nil
}

// DeleteFile removes a file and returns to the home page.
func DeleteFile(id string) (domain.Request, error) {
	if err := check(FileInput{ID: id}); err != nil {
		return domain.Request{}, err
	}
	return domain.Request{
		Action:    ActionDeleteFile,
		Endpoint:  "/files/delete",
		Method:    domain.MethodDelete,
		Payload:   domain.RawPayload(id),
		OnSuccess: domain.RedirectTo(domain.HomeLocation),
		OnFailure: domain.AlertError("Failed to delete file"),
	}, nil
}

// FileLocation is the detail page of a file.
func FileLocation(id string) string {
	return "/files/i/" + url.PathEscape(id)
}

// OpenLocation reveals a file on the machine running the SFS client and then
// shows the file's page.
func OpenLocation(id string) (domain.Request, error) {
	if err := check(FileInput{ID: id}); err != nil {
		return domain.Request{}, err
	}
	return domain.Request{
		Action:    ActionOpenLocation,
		Endpoint:  FileLocation(id) + "/open-loc",
		Route:     OpenLocationRoute,
		Method:    domain.MethodGet,
		OnSuccess: domain.RedirectTo(FileLocation(id)),
		OnFailure: domain.InlineError("Failed to open file location"),
	}, nil
}

// EmptyRecycleBin permanently deletes everything in the recycle bin.
// Callers must confirm with EmptyBinPrompt first.
func EmptyRecycleBin() domain.Request {
	return domain.Request{
		Action:    ActionEmptyBin,
		Endpoint:  "/empty",
		Method:    domain.MethodDelete,
		OnSuccess: domain.RedirectTo(LocationRecycled),
		OnFailure: domain.AlertError("Failed to empty recycle bin"),
	}
}

// All returns one sample request per catalog action. Inputs are placeholders.
func All() []domain.Request {
	must := func(r domain.Request, err error) domain.Request {
		if err != nil {
			panic(err)
		}
		return r
	}
	return []domain.Request{
		must(Upload(UploadInput{File: strings.NewReader(""), Filename: "f", DestFolder: "/"})),
		must(AddNew("/")),
		must(Discover("/")),
		must(UploadProfilePicture(PictureInput{Image: strings.NewReader("")})),
		ClearProfilePicture(),
		EditProfile(ProfileInput{}),
		must(Search("q")),
		must(UpdateSettings(SettingsInput{})),
		must(DeleteFile("1")),
		must(OpenLocation("1")),
		EmptyRecycleBin(),
	}
}
