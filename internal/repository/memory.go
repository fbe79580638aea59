package repository

import (
	"math_tutor_backend/internal/model"
	"math_tutor_backend/internal/util"
	"sync"
	"time"
)

// 内存实现：数据库连不上时的降级存储，进程重启即丢失。
// 只保证单条写入的原子性，与 MySQL 实现的语义保持一致。

type MemorySolutionStore struct {
	mu        sync.RWMutex
	solutions map[string]*model.Solution
}

func NewMemorySolutionStore() *MemorySolutionStore {
	return &MemorySolutionStore{solutions: make(map[string]*model.Solution)}
}

func (m *MemorySolutionStore) Create(s *model.Solution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	cp := *s
	m.solutions[s.ID] = &cp
	return nil
}

func (m *MemorySolutionStore) FindByID(id string) (*model.Solution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.solutions[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MemorySolutionStore) IncrementViewCount(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.solutions[id]
	if !ok {
		return util.ErrNotFound
	}
	s.ViewCount++
	return nil
}

func (m *MemorySolutionStore) UpdateStudentID(id string, studentID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.solutions[id]
	if !ok {
		return util.ErrNotFound
	}
	sid := studentID
	s.StudentID = &sid
	return nil
}

func (m *MemorySolutionStore) DeleteExpired(before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, s := range m.solutions {
		if s.ExpiresAt.Before(before) {
			delete(m.solutions, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *MemorySolutionStore) FindByDateRange(start, end time.Time) ([]model.Solution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []model.Solution
	for _, s := range m.solutions {
		if !s.CreatedAt.Before(start) && s.CreatedAt.Before(end) {
			result = append(result, *s)
		}
	}
	return result, nil
}

type MemoryStudentStore struct {
	mu       sync.RWMutex
	nextID   uint
	students map[string]*model.Student
}

func NewMemoryStudentStore() *MemoryStudentStore {
	return &MemoryStudentStore{nextID: 1, students: make(map[string]*model.Student)}
}

func (m *MemoryStudentStore) FindByExternalID(externalID string) (*model.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.students[externalID]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (m *MemoryStudentStore) Create(st *model.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st.ID = m.nextID
	m.nextID++
	now := time.Now()
	if st.CreatedAt.IsZero() {
		st.CreatedAt = now
	}
	st.UpdatedAt = now
	cp := *st
	m.students[st.ExternalUserID] = &cp
	return nil
}

func (m *MemoryStudentStore) Update(st *model.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st.UpdatedAt = time.Now()
	cp := *st
	m.students[st.ExternalUserID] = &cp
	return nil
}

type MemoryTeacherStore struct {
	mu       sync.RWMutex
	nextID   uint
	teachers map[string]*model.Teacher
}

func NewMemoryTeacherStore() *MemoryTeacherStore {
	return &MemoryTeacherStore{nextID: 1, teachers: make(map[string]*model.Teacher)}
}

func (m *MemoryTeacherStore) FindByExternalID(externalID string) (*model.Teacher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.teachers[externalID]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MemoryTeacherStore) Create(t *model.Teacher) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = m.nextID
	m.nextID++
	cp := *t
	m.teachers[t.ExternalUserID] = &cp
	return nil
}
