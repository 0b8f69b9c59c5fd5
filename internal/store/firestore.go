package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"wastage-backend/internal/models"
)

const (
	wastageCollection = "wastage"
	usersCollection   = "users"
)

// firestoreEntry: "wastage" koleksiyonundaki doküman şekli (id doküman adıdır)
type firestoreEntry struct {
	Item     string    `firestore:"item"`
	Quantity float64   `firestore:"quantity"`
	Unit     string    `firestore:"unit"`
	Reason   string    `firestore:"reason"`
	Date     time.Time `firestore:"date"`
	UserID   string    `firestore:"userId"`
	Cost     *float64  `firestore:"cost,omitempty"`
}

type firestoreUser struct {
	Email           string    `firestore:"email"`
	Role            string    `firestore:"role"`
	PasswordHash    string    `firestore:"passwordHash,omitempty"`
	WeeklyWasteGoal *float64  `firestore:"weeklyWasteGoal,omitempty"`
	CreatedAt       time.Time `firestore:"createdAt"`
	UpdatedAt       time.Time `firestore:"updatedAt"`
}

// FirestoreStore: Firebase projesindeki "wastage" ve "users" koleksiyonları
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) ListRecords(ctx context.Context, scope Scope) ([]models.WastageEntry, error) {
	var iter *firestore.DocumentIterator
	if scope.All {
		iter = s.client.Collection(wastageCollection).Documents(ctx)
	} else {
		iter = s.client.Collection(wastageCollection).Where("userId", "==", scope.OwnerID).Documents(ctx)
	}
	return readEntries(iter)
}

func (s *FirestoreStore) ListByReason(ctx context.Context, reason models.WastageReason) ([]models.WastageEntry, error) {
	iter := s.client.Collection(wastageCollection).Where("reason", "==", string(reason)).Documents(ctx)
	return readEntries(iter)
}

func (s *FirestoreStore) GetRecord(ctx context.Context, id string) (*models.WastageEntry, error) {
	snap, err := s.client.Collection(wastageCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("firestore: kayıt okunamadı: %w", err)
	}
	e, err := decodeEntry(snap)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *FirestoreStore) CreateRecord(ctx context.Context, rec NewRecord) (string, error) {
	doc := firestoreEntry{
		Item:     rec.Item,
		Quantity: rec.Quantity,
		Unit:     string(rec.Unit),
		Reason:   string(rec.Reason),
		Date:     rec.Date,
		UserID:   rec.UserID,
		Cost:     rec.Cost,
	}
	ref, _, err := s.client.Collection(wastageCollection).Add(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("firestore: kayıt oluşturulamadı: %w", err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) DeleteRecord(ctx context.Context, id string) error {
	ref := s.client.Collection(wastageCollection).Doc(id)
	// Delete, olmayan doküman için hata vermez; önce varlık kontrolü
	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("firestore: kayıt okunamadı: %w", err)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("firestore: kayıt silinemedi: %w", err)
	}
	return nil
}

func (s *FirestoreStore) GetUserProfile(ctx context.Context, id string) (*models.User, error) {
	snap, err := s.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("firestore: kullanıcı okunamadı: %w", err)
	}
	u, err := decodeUser(snap)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *FirestoreStore) GetUserProfiles(ctx context.Context, ids []string) (map[string]models.User, error) {
	out := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, s.client.Collection(usersCollection).Doc(id))
	}
	snaps, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("firestore: kullanıcılar okunamadı: %w", err)
	}
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		u, err := decodeUser(snap)
		if err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, nil
}

func (s *FirestoreStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	snaps, err := s.client.Collection(usersCollection).
		Where("email", "==", strings.ToLower(email)).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore: kullanıcı aranamadı: %w", err)
	}
	if len(snaps) == 0 {
		return nil, ErrNotFound
	}
	u, err := decodeUser(snaps[0])
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *FirestoreStore) CountUsersByRole(ctx context.Context, role models.UserRole) (int64, error) {
	snaps, err := s.client.Collection(usersCollection).Where("role", "==", string(role)).Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("firestore: kullanıcı sayılamadı: %w", err)
	}
	return int64(len(snaps)), nil
}

func (s *FirestoreStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.Email != "" {
		if _, err := s.FindUserByEmail(ctx, user.Email); err == nil {
			return ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = s.client.Collection(usersCollection).NewDoc().ID
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	doc := firestoreUser{
		Email:           strings.ToLower(user.Email),
		Role:            string(user.Role),
		PasswordHash:    user.PasswordHash,
		WeeklyWasteGoal: user.WeeklyWasteGoal,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := s.client.Collection(usersCollection).Doc(user.ID).Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore: kullanıcı oluşturulamadı: %w", err)
	}
	return nil
}

func (s *FirestoreStore) SetUserGoal(ctx context.Context, id string, goal float64) error {
	_, err := s.client.Collection(usersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "weeklyWasteGoal", Value: goal},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("firestore: hedef güncellenemedi: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Close(context.Context) error {
	return s.client.Close()
}

func readEntries(iter *firestore.DocumentIterator) ([]models.WastageEntry, error) {
	snaps, err := iter.GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore: kayıtlar okunamadı: %w", err)
	}
	entries := make([]models.WastageEntry, 0, len(snaps))
	for _, snap := range snaps {
		e, err := decodeEntry(snap)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func decodeEntry(snap *firestore.DocumentSnapshot) (models.WastageEntry, error) {
	var doc firestoreEntry
	if err := snap.DataTo(&doc); err != nil {
		return models.WastageEntry{}, fmt.Errorf("firestore: %s çözümlenemedi: %w", snap.Ref.ID, err)
	}
	return models.WastageEntry{
		ID:        snap.Ref.ID,
		Item:      doc.Item,
		Quantity:  doc.Quantity,
		Unit:      models.WastageUnit(doc.Unit),
		Reason:    models.WastageReason(doc.Reason),
		Date:      doc.Date,
		UserID:    doc.UserID,
		Cost:      doc.Cost,
		CreatedAt: snap.CreateTime,
	}, nil
}

func decodeUser(snap *firestore.DocumentSnapshot) (models.User, error) {
	var doc firestoreUser
	if err := snap.DataTo(&doc); err != nil {
		return models.User{}, fmt.Errorf("firestore: kullanıcı %s çözümlenemedi: %w", snap.Ref.ID, err)
	}
	role := models.UserRole(doc.Role)
	if role == "" {
		role = models.RoleOwner
	}
	return models.User{
		ID:              snap.Ref.ID,
		Email:           doc.Email,
		PasswordHash:    doc.PasswordHash,
		Role:            role,
		WeeklyWasteGoal: doc.WeeklyWasteGoal,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}, nil
}
