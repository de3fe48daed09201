package handlers

import (
	"net/http"

	"github.com/andrewpaige1/kioku-api/models"
	"github.com/andrewpaige1/kioku-api/repository"
	"github.com/andrewpaige1/kioku-api/validation"
	"go.uber.org/zap"
)

type createUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

func (req *createUserRequest) validate() error {
	switch {
	case req.Username == nil:
		return missingField("username")
	case req.Email == nil:
		return missingField("email")
	}
	return nil
}

type updateUserRequest struct {
	Username *string `json:"username"`
}

func (req *updateUserRequest) validate() error {
	if req.Username == nil {
		return missingField("username")
	}
	return nil
}

// GET /users
func (h *DBHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.Users.List(r.Context())
	if err != nil {
		h.writeListError(w, "GetUsers", "users", err)
		return
	}
	h.writeJSON(w, "GetUsers", http.StatusOK, users)
}

// GET /users/{id}
func (h *DBHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	user, err := h.store.Users.FindByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, "GetUserByID", "Could not find user", err)
		return
	}
	h.writeJSON(w, "GetUserByID", http.StatusOK, user)
}

// POST /users
func (h *DBHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !h.decode(w, r, "CreateUser", &req) {
		return
	}

	ctx := r.Context()
	user := models.User{Username: *req.Username, Email: *req.Email}
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := validation.UniqueUsername(ctx, tx, user.Username, ""); err != nil {
			return err
		}
		return tx.Users.Create(ctx, &user)
	})
	if err != nil {
		h.writeStoreError(w, "CreateUser", "Could not create user", err)
		return
	}

	h.log.Info("CreateUser: created user", zap.String("id", user.ID), zap.String("username", user.Username))
	h.writeJSON(w, "CreateUser", http.StatusOK, user)
}

// PUT /users/{id}
func (h *DBHandler) UpdateUserByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req updateUserRequest
	if !h.decode(w, r, "UpdateUserByID", &req) {
		return
	}

	ctx := r.Context()
	var user *models.User
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		if user, err = tx.Users.FindByID(ctx, id); err != nil {
			return err
		}
		if err := validation.UniqueUsername(ctx, tx, *req.Username, id); err != nil {
			return err
		}
		user.Username = *req.Username
		return tx.Users.Update(ctx, user)
	})
	if err != nil {
		h.writeStoreError(w, "UpdateUserByID", "Could not update user", err)
		return
	}
	h.writeJSON(w, "UpdateUserByID", http.StatusOK, user)
}

// DELETE /users/{id}
//
// Users that still own cards or decks are not deleted; nothing cascades.
func (h *DBHandler) DeleteUserByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ctx := r.Context()

	var deleted *models.User
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := validation.UserDeletable(ctx, tx, id); err != nil {
			return err
		}
		var err error
		deleted, err = tx.Users.Delete(ctx, id)
		return err
	})
	if err != nil {
		h.writeStoreError(w, "DeleteUserByID", "Could not delete user", err)
		return
	}

	h.log.Info("DeleteUserByID: deleted user", zap.String("id", id))
	h.writeJSON(w, "DeleteUserByID", http.StatusOK, deleted)
}
