package handlers_test

import (
	"net/http"
	"testing"

	"github.com/andrewpaige1/kioku-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCards_Empty(t *testing.T) {
	s := newServer(t)

	rr := s.do(http.MethodGet, "/cards", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestCreateCard_EchoesCreator(t *testing.T) {
	s := newServer(t)
	user := s.createUser(t, "kenji")

	card := s.createCard(t, user.ID)
	assert.Len(t, card.ID, 21)
	assert.Equal(t, user.ID, card.CreatorID)
	assert.Nil(t, card.DeckID)
}

func TestCreateCard_UnknownCreator(t *testing.T) {
	s := newServer(t)

	rr := s.do(http.MethodPost, "/cards", `{"name":"n","front_desc":"f","back_desc":"b","creator_id":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(http.MethodGet, "/cards", "")
	assert.Empty(t, decodeBody[[]models.Card](t, rr))
}

func TestCreateCard_UnknownDeck(t *testing.T) {
	s := newServer(t)
	user := s.createUser(t, "kenji")

	rr := s.do(http.MethodPost, "/cards",
		`{"name":"n","front_desc":"f","back_desc":"b","creator_id":"`+user.ID+`","deck_id":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateCard_MissingField(t *testing.T) {
	s := newServer(t)

	rr := s.do(http.MethodPost, "/cards", `{"name":"n","front_desc":"f","creator_id":"x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "back_desc")
}

func TestGetCardByID_NotFound(t *testing.T) {
	s := newServer(t)

	rr := s.do(http.MethodGet, "/cards/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateCardByID_Partial(t *testing.T) {
	s := newServer(t)
	user := s.createUser(t, "kenji")
	card := s.createCard(t, user.ID)

	rr := s.do(http.MethodPut, "/cards/"+card.ID, `{"back_desc":"remembrance"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	updated := decodeBody[models.Card](t, rr)
	assert.Equal(t, card.Name, updated.Name)
	assert.Equal(t, card.FrontDesc, updated.FrontDesc)
	assert.Equal(t, "remembrance", updated.BackDesc)
}

func TestUpdateCardByID_DeckAssignment(t *testing.T) {
	s := newServer(t)
	user := s.createUser(t, "kenji")
	card := s.createCard(t, user.ID)
	deck := s.createDeck(t, user.ID, nil)

	rr := s.do(http.MethodPut, "/cards/"+card.ID, `{"deck_id":"`+deck.ID+`"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decodeBody[models.Card](t, rr)
	require.NotNil(t, updated.DeckID)
	assert.Equal(t, deck.ID, *updated.DeckID)

	rr = s.do(http.MethodPut, "/cards/"+card.ID, `{"deck_id":null}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, decodeBody[models.Card](t, rr).DeckID)
}

func TestUpdateCardByID_UnknownDeck(t *testing.T) {
	s := newServer(t)
	user := s.createUser(t, "kenji")
	card := s.createCard(t, user.ID)

	rr := s.do(http.MethodPut, "/cards/"+card.ID, `{"deck_id":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateCardByID_NotFound(t *testing.T) {
	s := newServer(t)

	rr := s.do(http.MethodPut, "/cards/nope", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteCardByID_NotFound(t *testing.T) {
	s := newServer(t)

	rr := s.do(http.MethodDelete, "/cards/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCardLifecycle(t *testing.T) {
	s := newServer(t)
	user := s.createUser(t, "kenji")
	card := s.createCard(t, user.ID)

	rr := s.do(http.MethodGet, "/cards/"+card.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, card.Name, decodeBody[models.Card](t, rr).Name)

	rr = s.do(http.MethodDelete, "/cards/"+card.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, card.ID, decodeBody[models.Card](t, rr).ID)

	rr = s.do(http.MethodGet, "/cards/"+card.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
