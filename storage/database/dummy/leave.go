package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/mahudhurio/core/leave"
)

type leaveRepository struct {
	db *leaveTable
}

var _ leave.Repository = (*leaveRepository)(nil) // interface compliance check

func NewLeaveRepository(db *DB) leave.Repository {
	return &leaveRepository{db: db.leave}
}

func (repo *leaveRepository) CreateLeave(ctx context.Context, lv leave.Leave) (leave.Leave, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	lv.ID = uuid.New().String()
	repo.db.table[lv.ID] = &lv
	return lv, nil
}

func (repo *leaveRepository) GetLeaveByID(ctx context.Context, id string) (leave.Leave, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if lv, ok := repo.db.table[id]; ok {
		return *lv, nil
	}
	return leave.Leave{}, leave.ErrNotFound
}

func (repo *leaveRepository) UpdateLeave(ctx context.Context, lv leave.Leave) (leave.Leave, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[lv.ID]; !ok {
		return leave.Leave{}, leave.ErrNotFound
	}
	repo.db.table[lv.ID] = &lv
	return lv, nil
}

func (repo *leaveRepository) FilterLeavesByStudents(ctx context.Context, studentIDs []string) ([]leave.Leave, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	leaves := make([]leave.Leave, 0)
	for _, lv := range repo.db.table {
		if contains(studentIDs, lv.StudentID) {
			leaves = append(leaves, *lv)
		}
	}
	// newest first
	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].CreatedAt.Equal(leaves[j].CreatedAt) {
			return leaves[i].ID > leaves[j].ID
		}
		return leaves[i].CreatedAt.After(leaves[j].CreatedAt)
	})
	return leaves, nil
}
