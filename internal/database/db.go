package database

import (
	"context"
	"fmt"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"google.golang.org/api/option"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"wastage-backend/internal/config"
	"wastage-backend/internal/models"
	"wastage-backend/internal/store"
)

// Backend: seçilen depo ve yan ürünleri (audit tablosu için gorm, auth için firebase)
type Backend struct {
	Store    store.Store
	DB       *gorm.DB      // sadece postgres
	Firebase *firebase.App // firestore deposu veya firebase auth açıksa
}

func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("veritabanına bağlanılamadı: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.WastageEntry{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("migration başarısız: %w", err)
	}
	return db, nil
}

func InitFirebase(ctx context.Context, projectID, credentialsPath string) (*firebase.App, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		if _, err := os.Stat(credentialsPath); err != nil {
			return nil, fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
		}
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}
	return app, nil
}

func OpenMongo(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	if uri == "" {
		return nil, fmt.Errorf("database connection URL is empty")
	}

	clientOptions := options.Client().ApplyURI(uri).
		SetMaxPoolSize(20).
		SetConnectTimeout(5 * time.Second).
		SetSocketTimeout(10 * time.Second)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
	defer cancelPing()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(dbName)
	if err := ensureMongoIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return db, nil
}

func ensureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	// boş email'li (firebase) profiller çakışmasın diye partial index
	if _, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"email": bson.M{"$gt": ""}}),
	}); err != nil {
		return fmt.Errorf("users email index oluşturulamadı: %w", err)
	}

	if _, err := db.Collection("wastage").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "reason", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("wastage index oluşturulamadı: %w", err)
	}
	return nil
}

// Open: STORE_DRIVER'a göre depoyu açar. "none" hata değildir, salt-okunur moddur.
func Open(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*Backend, error) {
	b := &Backend{}

	if cfg.StoreDriver == "firestore" || cfg.AuthProvider == "firebase" {
		app, err := InitFirebase(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath)
		if err != nil {
			return nil, err
		}
		b.Firebase = app
	}

	switch cfg.StoreDriver {
	case "postgres":
		db, err := OpenPostgres(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		b.DB = db
		b.Store = store.NewGormStore(db)

	case "firestore":
		client, err := b.Firebase.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("firestore client oluşturulamadı: %w", err)
		}
		b.Store = store.NewFirestoreStore(client)

	case "mongo":
		db, err := OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		b.Store = store.NewMongoStore(db)

	case "memory":
		log.Warn("[WARN] STORE_DRIVER=memory: kayıtlar süreç kapanınca kaybolur.")
		b.Store = store.NewMemoryStore()

	default:
		log.Warn("[WARN] Kayıt deposu yapılandırılmamış, salt-okunur modda çalışılıyor.")
		b.Store = store.Unconfigured{}
	}

	log.WithField("driver", cfg.StoreDriver).Info("record store ready")
	return b, nil
}
