package repository

import "github.com/luxylyfe/portal/internal/docstore"

// Repositories bundles one repository per entity over a shared store.
type Repositories struct {
	Users         *UserRepo
	Sessions      *SessionRepo
	LoginAttempts *LoginAttemptRepo
	Properties    *PropertyRepo
	Content       *PageContentRepo
	Settings      *SiteSettingRepo
	Requests      *RequestRepo
}

// New wires every repository to store.
func New(store docstore.Store) *Repositories {
	sessions := NewSessionRepo(store)
	return &Repositories{
		Users:         NewUserRepo(store, sessions),
		Sessions:      sessions,
		LoginAttempts: NewLoginAttemptRepo(store),
		Properties:    NewPropertyRepo(store),
		Content:       NewPageContentRepo(store),
		Settings:      NewSiteSettingRepo(store),
		Requests:      NewRequestRepo(store),
	}
}
