package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"wastage-backend/internal/models"
)

type mongoEntry struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Item     string             `bson:"item"`
	Quantity float64            `bson:"quantity"`
	Unit     string             `bson:"unit"`
	Reason   string             `bson:"reason"`
	Date     time.Time          `bson:"date"`
	UserID   string             `bson:"userId"`
	Cost     *float64           `bson:"cost,omitempty"`
}

// kullanıcı id'si string tutulur (uuid ya da firebase uid)
type mongoUser struct {
	ID              string    `bson:"_id"`
	Email           string    `bson:"email"`
	Role            string    `bson:"role"`
	PasswordHash    string    `bson:"passwordHash,omitempty"`
	WeeklyWasteGoal *float64  `bson:"weeklyWasteGoal,omitempty"`
	CreatedAt       time.Time `bson:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt"`
}

// MongoStore: "wastage" ve "users" koleksiyonları
type MongoStore struct {
	db      *mongo.Database
	wastage *mongo.Collection
	users   *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		db:      db,
		wastage: db.Collection(wastageCollection),
		users:   db.Collection(usersCollection),
	}
}

func (s *MongoStore) ListRecords(ctx context.Context, scope Scope) ([]models.WastageEntry, error) {
	filter := bson.M{}
	if !scope.All {
		filter = bson.M{"userId": scope.OwnerID}
	}
	return s.findEntries(ctx, filter)
}

func (s *MongoStore) ListByReason(ctx context.Context, reason models.WastageReason) ([]models.WastageEntry, error) {
	return s.findEntries(ctx, bson.M{"reason": string(reason)})
}

func (s *MongoStore) findEntries(ctx context.Context, filter bson.M) ([]models.WastageEntry, error) {
	cursor, err := s.wastage.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongo: kayıtlar okunamadı: %w", err)
	}
	var docs []mongoEntry
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: kayıtlar çözümlenemedi: %w", err)
	}
	entries := make([]models.WastageEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, d.model())
	}
	return entries, nil
}

func (s *MongoStore) GetRecord(ctx context.Context, id string) (*models.WastageEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var doc mongoEntry
	if err := s.wastage.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mongo: kayıt okunamadı: %w", err)
	}
	e := doc.model()
	return &e, nil
}

func (s *MongoStore) CreateRecord(ctx context.Context, rec NewRecord) (string, error) {
	doc := mongoEntry{
		ID:       primitive.NewObjectID(),
		Item:     rec.Item,
		Quantity: rec.Quantity,
		Unit:     string(rec.Unit),
		Reason:   string(rec.Reason),
		Date:     rec.Date,
		UserID:   rec.UserID,
		Cost:     rec.Cost,
	}
	if _, err := s.wastage.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("mongo: kayıt oluşturulamadı: %w", err)
	}
	return doc.ID.Hex(), nil
}

func (s *MongoStore) DeleteRecord(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.wastage.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("mongo: kayıt silinemedi: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) GetUserProfile(ctx context.Context, id string) (*models.User, error) {
	var doc mongoUser
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mongo: kullanıcı okunamadı: %w", err)
	}
	u := doc.model()
	return &u, nil
}

func (s *MongoStore) GetUserProfiles(ctx context.Context, ids []string) (map[string]models.User, error) {
	out := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("mongo: kullanıcılar okunamadı: %w", err)
	}
	var docs []mongoUser
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: kullanıcılar çözümlenemedi: %w", err)
	}
	for _, d := range docs {
		out[d.ID] = d.model()
	}
	return out, nil
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc mongoUser
	err := s.users.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mongo: kullanıcı aranamadı: %w", err)
	}
	u := doc.model()
	return &u, nil
}

func (s *MongoStore) CountUsersByRole(ctx context.Context, role models.UserRole) (int64, error) {
	n, err := s.users.CountDocuments(ctx, bson.M{"role": string(role)})
	if err != nil {
		return 0, fmt.Errorf("mongo: kullanıcı sayılamadı: %w", err)
	}
	return n, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.Email != "" {
		if _, err := s.FindUserByEmail(ctx, user.Email); err == nil {
			return ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	doc := mongoUser{
		ID:              user.ID,
		Email:           strings.ToLower(user.Email),
		Role:            string(user.Role),
		PasswordHash:    user.PasswordHash,
		WeeklyWasteGoal: user.WeeklyWasteGoal,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("mongo: kullanıcı oluşturulamadı: %w", err)
	}
	return nil
}

func (s *MongoStore) SetUserGoal(ctx context.Context, id string, goal float64) error {
	res, err := s.users.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"weeklyWasteGoal": goal, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("mongo: hedef güncellenemedi: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func (d mongoEntry) model() models.WastageEntry {
	return models.WastageEntry{
		ID:        d.ID.Hex(),
		Item:      d.Item,
		Quantity:  d.Quantity,
		Unit:      models.WastageUnit(d.Unit),
		Reason:    models.WastageReason(d.Reason),
		Date:      d.Date,
		UserID:    d.UserID,
		Cost:      d.Cost,
		CreatedAt: d.ID.Timestamp(),
	}
}

func (d mongoUser) model() models.User {
	role := models.UserRole(d.Role)
	if role == "" {
		role = models.RoleOwner
	}
	return models.User{
		ID:              d.ID,
		Email:           d.Email,
		PasswordHash:    d.PasswordHash,
		Role:            role,
		WeeklyWasteGoal: d.WeeklyWasteGoal,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
