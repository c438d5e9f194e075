package util

import (
	"container/list"
	"sync"

	"gorm.io/gorm"
)

const defaultUserCacheSize = 1000

type usernameEntry struct {
	userID   uint
	username string
}

// usernameLRU maps user ids to usernames for audit lines, evicting the least recently used id.
type usernameLRU struct {
	mu       sync.Mutex
	ll       *list.List
	items    map[uint]*list.Element
	capacity int
}

var (
	userCache   *usernameLRU
	userCacheMu sync.RWMutex
)

// InitUsernameCache initializes the cache; capacity <= 0 falls back to 1000.
func InitUsernameCache(capacity int) {
	if capacity <= 0 {
		capacity = defaultUserCacheSize
	}
	userCacheMu.Lock()
	defer userCacheMu.Unlock()
	userCache = &usernameLRU{
		ll:       list.New(),
		items:    make(map[uint]*list.Element),
		capacity: capacity,
	}
}

func currentUserCache() *usernameLRU {
	userCacheMu.RLock()
	defer userCacheMu.RUnlock()
	return userCache
}

// UsernameCacheGet returns the cached username for userID.
func UsernameCacheGet(userID uint) (string, bool) {
	c := currentUserCache()
	if c == nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ele, ok := c.items[userID]
	if !ok {
		return "", false
	}
	c.ll.MoveToFront(ele)
	return ele.Value.(usernameEntry).username, true
}

// UsernameCacheSet stores username for userID.
func UsernameCacheSet(userID uint, username string) {
	c := currentUserCache()
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if ele, ok := c.items[userID]; ok {
		c.ll.MoveToFront(ele)
		ele.Value = usernameEntry{userID: userID, username: username}
		return
	}
	c.items[userID] = c.ll.PushFront(usernameEntry{userID: userID, username: username})
	if c.ll.Len() > c.capacity {
		tail := c.ll.Back()
		delete(c.items, tail.Value.(usernameEntry).userID)
		c.ll.Remove(tail)
	}
}

// GetUsername returns the username of userID from the cache, falling back to the users table.
func GetUsername(db *gorm.DB, userID uint) string {
	if userID == 0 {
		return ""
	}
	if name, ok := UsernameCacheGet(userID); ok {
		return name
	}
	if db == nil {
		return ""
	}
	var u struct{ Username string }
	if err := db.Table("users").Select("username").Where("id = ?", userID).Take(&u).Error; err != nil {
		return ""
	}
	if u.Username != "" {
		UsernameCacheSet(userID, u.Username)
	}
	return u.Username
}
