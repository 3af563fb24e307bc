package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/gms2/gms-api/internal/core/domain"
)

const testUserID = "3f2b8c1e-5a4d-4e8f-9b7a-1c2d3e4f5a6b"

func TestProfileUpdate_OnlyEditableFields(t *testing.T) {
	u := &domain.User{
		ID:           testUserID,
		UserName:     "bob",
		Email:        "bob@x.com",
		PasswordHash: "secret-hash",
		Roles:        []string{domain.RoleTeacher},
	}
	u.ApplyProfile(domain.Profile{UserName: "bob", Email: "bob@x.com", City: "Austin"})

	set, ok := profileUpdate(u, time.Now())["$set"].(bson.M)
	if !ok {
		t.Fatalf("expected a $set document")
	}
	for _, forbidden := range []string{"_id", "password_hash", "roles", "created_at"} {
		if _, present := set[forbidden]; present {
			t.Fatalf("%s must not be part of a profile update", forbidden)
		}
	}
	if set["normalized_user_name"] != "BOB" || set["normalized_email"] != "BOB@X.COM" || set["city"] != "Austin" {
		t.Fatalf("unexpected $set document: %v", set)
	}
}

func TestToUserDocument_NilRolesStoredAsEmpty(t *testing.T) {
	doc := toUserDocument(&domain.User{ID: testUserID})
	if doc.Roles == nil {
		t.Fatalf("roles must be stored as an empty array, not null")
	}
}

func TestUserRepository_WithMockDeployment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find by id", func(mt *mtest.T) {
		repo := &UserRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "gms.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: testUserID},
			{Key: "user_name", Value: "alice"},
			{Key: "normalized_user_name", Value: "ALICE"},
			{Key: "password_hash", Value: "hash"},
			{Key: "roles", Value: bson.A{domain.RoleStudent}},
		}))

		user, err := repo.FindByID(context.Background(), testUserID)
		if err != nil {
			mt.Fatalf("FindByID returned error: %v", err)
		}
		if user.UserName != "alice" || user.PasswordHash != "hash" || !user.HasRole(domain.RoleStudent) {
			mt.Fatalf("unexpected user: %+v", user)
		}
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		repo := &UserRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gms.users", mtest.FirstBatch))

		if _, err := repo.FindByID(context.Background(), testUserID); !errors.Is(err, domain.ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := &UserRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		if err := repo.Create(context.Background(), &domain.User{ID: testUserID}); !errors.Is(err, domain.ErrUserExists) {
			mt.Fatalf("expected ErrUserExists, got %v", err)
		}
	})

	mt.Run("update unknown id", func(mt *mtest.T) {
		repo := &UserRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		if err := repo.Update(context.Background(), &domain.User{ID: testUserID}); !errors.Is(err, domain.ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("delete unknown id", func(mt *mtest.T) {
		repo := &UserRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		if err := repo.Delete(context.Background(), testUserID); !errors.Is(err, domain.ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := &UserRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		if err := repo.Delete(context.Background(), testUserID); err != nil {
			mt.Fatalf("Delete returned error: %v", err)
		}
	})
}

func TestRoleRepository_WithMockDeployment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("exists", func(mt *mtest.T) {
		repo := &RoleRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gms.roles", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}))

		ok, err := repo.Exists(context.Background(), domain.RoleTeacher)
		if err != nil || !ok {
			mt.Fatalf("expected role to exist, got ok=%v err=%v", ok, err)
		}
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := &RoleRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Create(context.Background(), domain.NewRole("r1", domain.RoleTeacher))
		if !errors.Is(err, domain.ErrRoleExists) {
			mt.Fatalf("expected ErrRoleExists, got %v", err)
		}
	})
}
