package middleware

import (
	"net/http"
	"time"

	"github.com/ariebrainware/embryo-ai/classifier"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	dbKey          = "db"
	uploadStoreKey = "upload_store"
	classifierKey  = "classifier"
)

// DatabaseMiddleware makes db available to handlers through GetDB.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, db)
		c.Next()
	}
}

// GetDB returns the request's database handle, nil when none was injected.
func GetDB(c *gin.Context) *gorm.DB {
	if v, ok := c.Get(dbKey); ok {
		if db, ok := v.(*gorm.DB); ok {
			return db
		}
	}
	return nil
}

// UploadStoreMiddleware makes the image store available through GetUploadStore.
func UploadStoreMiddleware(store *util.UploadStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(uploadStoreKey, store)
		c.Next()
	}
}

func GetUploadStore(c *gin.Context) *util.UploadStore {
	if v, ok := c.Get(uploadStoreKey); ok {
		if s, ok := v.(*util.UploadStore); ok {
			return s
		}
	}
	return nil
}

// ClassifierMiddleware makes the embryo classifier available through GetClassifier.
func ClassifierMiddleware(clf *classifier.Classifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(classifierKey, clf)
		c.Next()
	}
}

func GetClassifier(c *gin.Context) *classifier.Classifier {
	if v, ok := c.Get(classifierKey); ok {
		if clf, ok := v.(*classifier.Classifier); ok {
			return clf
		}
	}
	return nil
}

// CORSMiddleware allows the given origins; "*" or an empty list allows any origin.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Requested-With", "X-User-Username", "X-Request-ID", "session-token"},
		ExposeHeaders: []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:        24 * time.Hour,
	}
	if len(origins) == 0 || util.Contains("*", origins) {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
