package services

import (
	"context"
	"mime/multipart"
	"sort"
	"strings"

	"github.com/mailam-cse/achievers-portal/internal/app/models"
	"github.com/mailam-cse/achievers-portal/internal/pkg/apperrors"
)

// In-memory store fakes standing in for the pgx repositories.

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64

	profiles *fakeProfileStore // profile side of CreateWithProfile
}

func newFakeUserStore(profiles *fakeProfileStore) *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}, nextID: 1, profiles: profiles}
}

func (s *fakeUserStore) CreateWithProfile(ctx context.Context, user *models.User, profile *models.StudentProfile) error {
	for _, u := range s.users {
		if u.Username == user.Username {
			return apperrors.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return apperrors.ErrEmailTaken
		}
	}
	if s.profiles != nil && profile.RollNumber != "" {
		for _, p := range s.profiles.profiles {
			if p.RollNumber == profile.RollNumber {
				return apperrors.ErrRollNumberTaken
			}
		}
	}

	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = user

	profile.UserID = user.ID
	if profile.RollNumber == "" {
		profile.RollNumber = models.PlaceholderRollNumber(user.ID)
	}
	if s.profiles != nil {
		s.profiles.profiles[user.ID] = profile
	}
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := s.GetByUsername(ctx, username)
	return err == nil, nil
}

func (s *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) CountStudents(ctx context.Context) (int64, error) {
	var n int64
	for _, u := range s.users {
		if !u.IsStaff {
			n++
		}
	}
	return n, nil
}

func (s *fakeUserStore) CountStaff(ctx context.Context) (int64, error) {
	var n int64
	for _, u := range s.users {
		if u.IsStaff {
			n++
		}
	}
	return n, nil
}

func (s *fakeUserStore) UpdateLastLogin(ctx context.Context, userID int64) error { return nil }

type fakeProfileStore struct {
	profiles map[int64]*models.StudentProfile // keyed by user ID
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[int64]*models.StudentProfile{}}
}

func (s *fakeProfileStore) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return p, nil
}

func (s *fakeProfileStore) Create(ctx context.Context, p *models.StudentProfile) error {
	s.profiles[p.UserID] = p
	return nil
}

func (s *fakeProfileStore) Update(ctx context.Context, p *models.StudentProfile) error {
	if _, ok := s.profiles[p.UserID]; !ok {
		return apperrors.ErrNotFound
	}
	s.profiles[p.UserID] = p
	return nil
}

func (s *fakeProfileStore) RollNumberExists(ctx context.Context, rollNumber string, excludeUserID int64) (bool, error) {
	for _, p := range s.profiles {
		if p.RollNumber == rollNumber && p.UserID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

type fakeAchievementStore struct {
	achievements map[int64]*models.Achievement
	nextID       int64
}

func newFakeAchievementStore() *fakeAchievementStore {
	return &fakeAchievementStore{achievements: map[int64]*models.Achievement{}, nextID: 1}
}

func (s *fakeAchievementStore) Create(ctx context.Context, a *models.Achievement) error {
	a.ID = s.nextID
	s.nextID++
	s.achievements[a.ID] = a
	return nil
}

func (s *fakeAchievementStore) GetByID(ctx context.Context, id int64) (*models.Achievement, error) {
	a, ok := s.achievements[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return a, nil
}

func (s *fakeAchievementStore) sorted() []*models.Achievement {
	all := make([]*models.Achievement, 0, len(s.achievements))
	for _, a := range s.achievements {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all
}

func (s *fakeAchievementStore) ListByStudent(ctx context.Context, studentID int64) ([]*models.Achievement, error) {
	var out []*models.Achievement
	for _, a := range s.sorted() {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAchievementStore) ListApproved(ctx context.Context, search string) ([]*models.Achievement, error) {
	term := strings.ToLower(search)
	var out []*models.Achievement
	for _, a := range s.sorted() {
		if !a.IsApproved {
			continue
		}
		if term != "" {
			haystack := strings.ToLower(a.Name + " " + a.Event + " " + string(a.Competition) + " " + a.Description)
			if !strings.Contains(haystack, term) {
				continue
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *fakeAchievementStore) RecentApproved(ctx context.Context, limit int) ([]*models.Achievement, error) {
	approved, _ := s.ListApproved(ctx, "")
	if len(approved) > limit {
		approved = approved[:limit]
	}
	return approved, nil
}

func (s *fakeAchievementStore) ListForModeration(ctx context.Context) ([]*models.Achievement, error) {
	all := s.sorted()
	sort.SliceStable(all, func(i, j int) bool {
		return !all[i].IsApproved && all[j].IsApproved
	})
	return all, nil
}

func (s *fakeAchievementStore) SetApproval(ctx context.Context, ids []int64, approved bool) (int64, error) {
	var count int64
	for _, id := range ids {
		if a, ok := s.achievements[id]; ok {
			a.IsApproved = approved
			count++
		}
	}
	return count, nil
}

func (s *fakeAchievementStore) DeleteOwned(ctx context.Context, id, studentID int64) (bool, error) {
	a, ok := s.achievements[id]
	if !ok || a.StudentID != studentID {
		return false, nil
	}
	delete(s.achievements, id)
	return true, nil
}

func (s *fakeAchievementStore) CountApproved(ctx context.Context) (int64, error) {
	var n int64
	for _, a := range s.achievements {
		if a.IsApproved {
			n++
		}
	}
	return n, nil
}

func (s *fakeAchievementStore) CountPending(ctx context.Context) (int64, error) {
	var n int64
	for _, a := range s.achievements {
		if !a.IsApproved {
			n++
		}
	}
	return n, nil
}

func (s *fakeAchievementStore) CountAll(ctx context.Context) (int64, error) {
	return int64(len(s.achievements)), nil
}

func (s *fakeAchievementStore) CountByStudent(ctx context.Context, studentID int64, approvedOnly bool) (int64, error) {
	var n int64
	for _, a := range s.achievements {
		if a.StudentID != studentID {
			continue
		}
		if approvedOnly && !a.IsApproved {
			continue
		}
		n++
	}
	return n, nil
}

type fakeContactStore struct {
	messages map[int64]*models.ContactMessage
	nextID   int64
}

func newFakeContactStore() *fakeContactStore {
	return &fakeContactStore{messages: map[int64]*models.ContactMessage{}, nextID: 1}
}

func (s *fakeContactStore) Create(ctx context.Context, m *models.ContactMessage) error {
	m.ID = s.nextID
	s.nextID++
	s.messages[m.ID] = m
	return nil
}

func (s *fakeContactStore) List(ctx context.Context) ([]*models.ContactMessage, error) {
	out := make([]*models.ContactMessage, 0, len(s.messages))
	for _, m := range s.messages {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeContactStore) SetRead(ctx context.Context, ids []int64, read bool) (int64, error) {
	var count int64
	for _, id := range ids {
		if m, ok := s.messages[id]; ok {
			m.IsRead = read
			count++
		}
	}
	return count, nil
}

func (s *fakeContactStore) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	for _, m := range s.messages {
		if !m.IsRead {
			n++
		}
	}
	return n, nil
}

// fakeFileStore records saves and deletes without touching the filesystem
type fakeFileStore struct {
	saved   map[string]bool
	deleted []string
	nextN   int
	failing bool
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{saved: map[string]bool{}}
}

func (s *fakeFileStore) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}
	if s.failing {
		return "", apperrors.ErrStorage
	}
	s.nextN++
	relPath := subPath + "/file-" + string(rune('a'+s.nextN-1)) + ".png"
	s.saved[relPath] = true
	return relPath, nil
}

func (s *fakeFileStore) DeleteFile(relPath string) error {
	delete(s.saved, relPath)
	s.deleted = append(s.deleted, relPath)
	return nil
}

func (s *fakeFileStore) Exists(relPath string) bool { return s.saved[relPath] }

func (s *fakeFileStore) URL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return "http://localhost:8080/uploads/" + relPath
}
