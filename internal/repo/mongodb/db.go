package mongodb

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// DB bundles the mongo client and the service database.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}
