package shell

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Donny1114/Device-Management-System/internal/model"
	"github.com/Donny1114/Device-Management-System/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestActions(auth *stubAuthService, devices *stubDeviceService, reports *stubReportService) (*Actions, *recordingNotifier) {
	notifier := &recordingNotifier{}
	if auth == nil {
		auth = &stubAuthService{}
	}
	if devices == nil {
		devices = &stubDeviceService{}
	}
	if reports == nil {
		reports = &stubReportService{}
	}
	return NewActions(auth, devices, reports, notifier, zap.NewNop()), notifier
}

func TestActions_Login(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantOK    bool
		wantTitle string
	}{
		{name: "success", wantOK: true},
		{name: "missing fields", err: service.ErrMissingFields, wantTitle: TitleInputError},
		{name: "invalid credentials", err: service.ErrInvalidCredentials, wantTitle: TitleLoginFailed},
		{name: "data access", err: errors.Join(service.ErrDataAccess, errors.New("connection refused")), wantTitle: TitleError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &stubAuthService{session: &model.Session{UserID: 1, Username: "alice"}, loginErr: tt.err}
			actions, notifier := newTestActions(auth, nil, nil)

			session, ok := actions.Login(context.Background(), "alice", "pw1")

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotNil(t, session)
				assert.Empty(t, notifier.notes)
				return
			}
			assert.Nil(t, session)
			require.Len(t, notifier.notes, 1)
			assert.Equal(t, "warn", notifier.notes[0].kind)
			assert.Equal(t, tt.wantTitle, notifier.notes[0].title)
		})
	}
}

func TestActions_Login_DataAccessMessageCarriesCause(t *testing.T) {
	auth := &stubAuthService{loginErr: errors.Join(service.ErrDataAccess, errors.New("connection refused"))}
	actions, notifier := newTestActions(auth, nil, nil)

	actions.Login(context.Background(), "alice", "pw1")

	require.Len(t, notifier.notes, 1)
	assert.Contains(t, notifier.notes[0].message, "connection refused")
}

func TestActions_Register(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantOK      bool
		wantKind    string
		wantTitle   string
		wantMessage string
	}{
		{name: "success", wantOK: true, wantKind: "inform", wantTitle: TitleRegistrationSuccessful, wantMessage: "User registered successfully!"},
		{name: "missing fields", err: service.ErrMissingFields, wantKind: "warn", wantTitle: TitleInputError, wantMessage: "Please fill in all fields."},
		{name: "mismatch", err: service.ErrPasswordMismatch, wantKind: "warn", wantTitle: TitleInputError, wantMessage: "Passwords do not match."},
		{name: "duplicate", err: service.ErrUserAlreadyExists, wantKind: "warn", wantTitle: TitleRegistrationFailed, wantMessage: "Username already exists."},
		{name: "data access", err: errors.Join(service.ErrDataAccess, errors.New("timeout")), wantKind: "warn", wantTitle: TitleRegistrationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions, notifier := newTestActions(&stubAuthService{registerErr: tt.err}, nil, nil)

			ok := actions.Register(context.Background(), "alice", "pw1", "pw1")

			assert.Equal(t, tt.wantOK, ok)
			require.Len(t, notifier.notes, 1)
			assert.Equal(t, tt.wantKind, notifier.notes[0].kind)
			assert.Equal(t, tt.wantTitle, notifier.notes[0].title)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, notifier.notes[0].message)
			}
		})
	}
}

func TestActions_LoadDevices(t *testing.T) {
	devices := &stubDeviceService{devices: []model.Device{{ID: 1, Name: "Probe A"}}}
	actions, notifier := newTestActions(nil, devices, nil)

	got, ok := actions.LoadDevices(context.Background())

	assert.True(t, ok)
	assert.Len(t, got, 1)
	assert.Empty(t, notifier.notes)
}

func TestActions_LoadDevices_Failure(t *testing.T) {
	devices := &stubDeviceService{listErr: errors.Join(service.ErrDataAccess, errors.New("connection refused"))}
	actions, notifier := newTestActions(nil, devices, nil)

	got, ok := actions.LoadDevices(context.Background())

	assert.False(t, ok)
	assert.Nil(t, got)
	require.Len(t, notifier.notes, 1)
	assert.Equal(t, TitleError, notifier.notes[0].title)
}

func TestActions_AddDevice(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantOK    bool
		wantKind  string
		wantTitle string
	}{
		{name: "success", wantOK: true, wantKind: "inform", wantTitle: TitleSuccess},
		{name: "missing fields", err: service.ErrMissingFields, wantKind: "warn", wantTitle: TitleInputError},
		{name: "unknown type", err: service.ErrUnknownDeviceType, wantKind: "warn", wantTitle: TitleInputError},
		{name: "data access", err: errors.Join(service.ErrDataAccess, errors.New("timeout")), wantKind: "warn", wantTitle: TitleError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions, notifier := newTestActions(nil, &stubDeviceService{addErr: tt.err}, nil)

			_, ok := actions.AddDevice(context.Background(), model.AddDeviceRequest{Name: "Probe A"})

			assert.Equal(t, tt.wantOK, ok)
			require.Len(t, notifier.notes, 1)
			assert.Equal(t, tt.wantKind, notifier.notes[0].kind)
			assert.Equal(t, tt.wantTitle, notifier.notes[0].title)
		})
	}
}

func TestActions_Export(t *testing.T) {
	reports := &stubReportService{}
	actions, notifier := newTestActions(nil, nil, reports)
	ctx := context.Background()

	assert.True(t, actions.ExportSpreadsheet(ctx, "/tmp/a.xlsx"))
	assert.True(t, actions.ExportDocument(ctx, "/tmp/a.pdf"))
	assert.True(t, actions.ExportCSV(ctx, "/tmp/a.csv"))

	assert.Equal(t, []string{"/tmp/a.xlsx", "/tmp/a.pdf", "/tmp/a.csv"}, reports.paths)
	require.Len(t, notifier.notes, 3)
	assert.Equal(t, notification{kind: "inform", title: TitleExportSuccessful, message: "Excel report saved successfully!"}, notifier.notes[0])
	assert.Equal(t, "PDF report saved successfully!", notifier.notes[1].message)
	assert.Equal(t, "CSV report saved successfully!", notifier.notes[2].message)
}

func TestActions_Export_EmptyPathIsCancel(t *testing.T) {
	reports := &stubReportService{}
	actions, notifier := newTestActions(nil, nil, reports)

	ok := actions.ExportDocument(context.Background(), "  ")

	assert.False(t, ok)
	assert.Empty(t, reports.paths)
	assert.Empty(t, notifier.notes)
}

func TestActions_Export_Failure(t *testing.T) {
	reports := &stubReportService{err: errors.Join(service.ErrIO, errors.New("permission denied"))}
	actions, notifier := newTestActions(nil, nil, reports)

	ok := actions.ExportSpreadsheet(context.Background(), "/root/locked.xlsx")

	assert.False(t, ok)
	require.Len(t, notifier.notes, 1)
	assert.Equal(t, "warn", notifier.notes[0].kind)
	assert.Equal(t, TitleError, notifier.notes[0].title)
	assert.Contains(t, notifier.notes[0].message, "permission denied")
}

func TestConsoleNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf)

	n.Warn(TitleLoginFailed, "Invalid username or password.")
	n.Inform(TitleSuccess, "Device added successfully!")

	assert.Equal(t, "[Login Failed] Invalid username or password.\n[Success] Device added successfully!\n", buf.String())
}
