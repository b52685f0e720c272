package core

import "math/rand"

// UserEntry is one row of a user_list snapshot.
type UserEntry struct {
	SID  string
	Name string
}

// Registry tracks every connected session, admin privilege, and the pool
// of admin display names. It is not safe for concurrent use: all access
// is serialized through the hub run loop.
type Registry struct {
	sessions map[string]*Session
	pool     []string
	used     map[string]struct{}
}

// NewRegistry builds a registry with the given admin name pool.
func NewRegistry(adminNames []string) *Registry {
	pool := make([]string, len(adminNames))
	copy(pool, adminNames)
	return &Registry{
		sessions: make(map[string]*Session),
		pool:     pool,
		used:     make(map[string]struct{}),
	}
}

// Register inserts the session or overwrites its display name. Idempotent.
func (r *Registry) Register(sid, name string) {
	if sess, ok := r.sessions[sid]; ok {
		sess.Name = name
		return
	}
	r.sessions[sid] = &Session{ID: sid, Name: name, Role: RoleVisitor}
}

// Session returns the session for sid, or nil if unknown.
func (r *Registry) Session(sid string) *Session {
	return r.sessions[sid]
}

// AllocateAdminName picks an unused name from the pool and marks it used.
// When the pool is exhausted the used set is cleared so allocation always
// makes progress, at the cost of reuse under heavy admin churn.
func (r *Registry) AllocateAdminName() string {
	available := make([]string, 0, len(r.pool))
	for _, name := range r.pool {
		if _, taken := r.used[name]; !taken {
			available = append(available, name)
		}
	}
	if len(available) == 0 {
		r.used = make(map[string]struct{})
		available = r.pool
	}
	name := available[rand.Intn(len(available))]
	r.used[name] = struct{}{}
	return name
}

// PromoteToAdmin grants admin privilege under the given display name and
// reserves that name so fresh allocations cannot collide with it.
func (r *Registry) PromoteToAdmin(sid, name string) {
	sess, ok := r.sessions[sid]
	if !ok {
		sess = &Session{ID: sid}
		r.sessions[sid] = sess
	}
	sess.Role = RoleAdmin
	sess.Name = name
	r.used[name] = struct{}{}
}

// Demote strips admin privilege and frees the admin name back to the pool.
// The session keeps its current display name.
func (r *Registry) Demote(sid string) {
	sess, ok := r.sessions[sid]
	if !ok || !sess.IsAdmin() {
		return
	}
	sess.Role = RoleVisitor
	delete(r.used, sess.Name)
}

// ReleaseAdminName returns an allocated name to the pool without touching
// any session. Used when a login fails after allocation.
func (r *Registry) ReleaseAdminName(name string) {
	delete(r.used, name)
}

// Remove demotes the session if needed and deletes it entirely.
func (r *Registry) Remove(sid string) {
	r.Demote(sid)
	delete(r.sessions, sid)
}

// HasAdmins reports whether any admin session is connected.
func (r *Registry) HasAdmins() bool {
	for _, sess := range r.sessions {
		if sess.IsAdmin() {
			return true
		}
	}
	return false
}

// AdminSIDs returns the session ids of all connected admins.
func (r *Registry) AdminSIDs() []string {
	var sids []string
	for sid, sess := range r.sessions {
		if sess.IsAdmin() {
			sids = append(sids, sid)
		}
	}
	return sids
}

// SnapshotAdmins returns all current admins with their names.
func (r *Registry) SnapshotAdmins() []UserEntry {
	return r.SnapshotAdminsExcluding("")
}

// SnapshotAdminsExcluding returns all current admins minus one session.
func (r *Registry) SnapshotAdminsExcluding(sid string) []UserEntry {
	entries := make([]UserEntry, 0)
	for _, sess := range r.sessions {
		if sess.IsAdmin() && sess.ID != sid {
			entries = append(entries, UserEntry{SID: sess.ID, Name: sess.Name})
		}
	}
	return entries
}

// SnapshotAllForAdmin returns every known session except the viewer,
// used to populate an admin's contact list.
func (r *Registry) SnapshotAllForAdmin(viewerSID string) []UserEntry {
	entries := make([]UserEntry, 0)
	for _, sess := range r.sessions {
		if sess.ID == viewerSID {
			continue
		}
		entries = append(entries, UserEntry{SID: sess.ID, Name: sess.Name})
	}
	return entries
}
