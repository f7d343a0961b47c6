package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,AuditPublisher

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"frontier/internal/storage/memory"
	"frontier/internal/user/models"
	"frontier/internal/user/service/mocks"
	userstore "frontier/internal/user/store"
	dErrors "frontier/pkg/domain-errors"
	audit "frontier/pkg/platform/audit"
	"frontier/pkg/platform/sentinel"
)

func TestProvision(t *testing.T) {
	t.Run("first login writes defaults and audits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStore(ctrl)
		publisher := mocks.NewMockAuditPublisher(ctrl)
		svc := New(store, WithAuditPublisher(publisher))

		store.EXPECT().CreateIfAbsent(gomock.Any(), &models.User{
			UID: "u1", DisplayName: "u1@example.com", Role: models.RoleUser, Email: "u1@example.com",
		}).Return(true, nil)
		publisher.EXPECT().Emit(gomock.Any(), audit.Event{
			UserID: "u1", Subject: "u1", Action: string(audit.EventUserProvisioned),
		}).Return(nil)

		created, err := svc.Provision(context.Background(), "u1", "u1@example.com")
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("existing user is left alone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStore(ctrl)
		publisher := mocks.NewMockAuditPublisher(ctrl)
		svc := New(store, WithAuditPublisher(publisher))

		store.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(false, nil)

		created, err := svc.Provision(context.Background(), "u1", "u1@example.com")
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("audit failure is logged and provisioning still succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStore(ctrl)
		publisher := mocks.NewMockAuditPublisher(ctrl)
		var buf bytes.Buffer
		svc := New(store, WithAuditPublisher(publisher), WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

		store.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(true, nil)
		publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("buffer full"))

		created, err := svc.Provision(context.Background(), "u1", "u1@example.com")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Contains(t, buf.String(), "audit emit failed")
		assert.Contains(t, buf.String(), "buffer full")
	})

	t.Run("blank uid is rejected", func(t *testing.T) {
		svc := New(mocks.NewMockStore(gomock.NewController(t)))
		_, err := svc.Provision(context.Background(), " ", "x@example.com")
		assert.True(t, dErrors.Is(err, dErrors.CodeValidation))
	})

	t.Run("store failure is internal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStore(ctrl)
		store.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(false, errors.New("down"))

		_, err := New(store).Provision(context.Background(), "u1", "u1@example.com")
		assert.True(t, dErrors.Is(err, dErrors.CodeInternal))
	})
}

func TestProfile(t *testing.T) {
	t.Run("missing record resolves to defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStore(ctrl)
		store.EXPECT().FindByID(gomock.Any(), "u9").Return(nil, sentinel.ErrNotFound)

		u, err := New(store).Profile(context.Background(), "u9", "u9@example.com")
		require.NoError(t, err)
		assert.Equal(t, models.NewDefaultUser("u9", "u9@example.com"), u)
	})

	t.Run("display name comes from the record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStore(ctrl)
		store.EXPECT().FindByID(gomock.Any(), "u1").Return(&models.User{UID: "u1", DisplayName: "Ana"}, nil)

		name, err := New(store).DisplayName(context.Background(), "u1", "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Ana", name)
	})

	t.Run("read failure is internal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStore(ctrl)
		store.EXPECT().FindByID(gomock.Any(), "u1").Return(nil, errors.New("down"))

		_, err := New(store).DisplayName(context.Background(), "u1", "")
		assert.True(t, dErrors.Is(err, dErrors.CodeInternal))
	})
}

func TestConcurrentProvisioningCreatesOnce(t *testing.T) {
	svc := New(userstore.New(memory.New()))

	const logins = 32
	var (
		wg      sync.WaitGroup
		created atomic.Int32
	)
	for range logins {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := svc.Provision(context.Background(), "u1", "u1@example.com")
			assert.NoError(t, err)
			if ok {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	u, err := svc.Profile(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", u.DisplayName)
}
