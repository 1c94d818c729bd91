package adapthttp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"feedback/internal/app"
	"feedback/internal/domain"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Descriptor describes one REST collection.
type Descriptor[D any] struct {
	// Entity names the record in alert headers.
	Entity string
	// Collection is the path segment under /api.
	Collection string
	// ID reads the record id; nil means the record is new.
	ID func(*D) *int64
	// Owner points at the record's userId field. New records without an
	// owner are assigned to the caller.
	Owner func(*D) **int64
	// OwnerScoped collections force callers without ROLE_ADMIN to create
	// records as themselves and list only their own.
	OwnerScoped bool
	// Validate, if set, runs before every save.
	Validate func(*D) error
}

// resource serves create, update, list, get and delete for one collection.
type resource[D any] struct {
	Descriptor[D]
	svc app.CRUD[D]
	s   *Server
}

func register[D any](r *mux.Router, s *Server, desc Descriptor[D], svc app.CRUD[D]) {
	res := &resource[D]{Descriptor: desc, svc: svc, s: s}
	base := "/" + desc.Collection
	r.HandleFunc(base, res.create).Methods(http.MethodPost)
	r.HandleFunc(base, res.update).Methods(http.MethodPut)
	r.HandleFunc(base, res.list).Methods(http.MethodGet)
	r.HandleFunc(base+"/{id}", res.get).Methods(http.MethodGet)
	r.HandleFunc(base+"/{id}", res.delete).Methods(http.MethodDelete)
}

func (res *resource[D]) create(w http.ResponseWriter, r *http.Request) {
	var dto D
	if err := parseJSON(r, &dto); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res.s.log.Debug("REST request to save", zap.String("entity", res.Entity))

	if res.ID(&dto) != nil {
		res.s.failureHeaders(w, res.Entity, "idexists")
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	res.save(w, r, &dto, true)
}

func (res *resource[D]) update(w http.ResponseWriter, r *http.Request) {
	var dto D
	if err := parseJSON(r, &dto); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res.s.log.Debug("REST request to update", zap.String("entity", res.Entity))

	// An id that names no row is inserted as a new record.
	create := res.ID(&dto) == nil
	if !create {
		existing, err := res.svc.FindOne(r.Context(), *res.ID(&dto))
		if err != nil {
			res.s.internalError(w, r, err)
			return
		}
		create = existing == nil
	}
	res.save(w, r, &dto, create)
}

func (res *resource[D]) save(w http.ResponseWriter, r *http.Request, dto *D, create bool) {
	if create {
		user := userFromContext(r)
		owner := res.Owner(dto)
		if *owner == nil || (res.OwnerScoped && !user.IsAdmin()) {
			id := user.ID
			*owner = &id
		}
	}
	if res.Validate != nil {
		if err := res.Validate(dto); err != nil {
			res.s.failureHeaders(w, res.Entity, "validation")
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	saved, err := res.svc.Save(r.Context(), dto)
	if err != nil {
		res.s.internalError(w, r, err)
		return
	}
	id := *res.ID(saved)

	if create {
		w.Header().Set("Location", fmt.Sprintf("/api/%s/%d", res.Collection, id))
		res.s.alertHeaders(w, res.Entity, "created", strconv.FormatInt(id, 10))
		writeJSON(w, http.StatusCreated, saved)
		return
	}
	res.s.alertHeaders(w, res.Entity, "updated", strconv.FormatInt(id, 10))
	writeJSON(w, http.StatusOK, saved)
}

func (res *resource[D]) list(w http.ResponseWriter, r *http.Request) {
	res.s.log.Debug("REST request to get a page", zap.String("entity", res.Entity))

	pr, err := pageRequest(r)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSort) {
			res.s.failureHeaders(w, res.Entity, "sort")
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	scope := domain.ScopeFor(userFromContext(r), res.OwnerScoped)

	page, err := res.svc.FindAll(r.Context(), scope, pr)
	if errors.Is(err, domain.ErrInvalidSort) {
		res.s.failureHeaders(w, res.Entity, "sort")
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		res.s.internalError(w, r, err)
		return
	}

	paginationHeaders(w, r.URL.Path, page.Number, page.Size, page.Total, page.TotalPages())
	writeJSON(w, http.StatusOK, page.Content)
}

func (res *resource[D]) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res.s.log.Debug("REST request to get", zap.String("entity", res.Entity), zap.Int64("id", id))

	dto, err := res.svc.FindOne(r.Context(), id)
	if err != nil {
		res.s.internalError(w, r, err)
		return
	}
	if dto == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (res *resource[D]) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res.s.log.Debug("REST request to delete", zap.String("entity", res.Entity), zap.Int64("id", id))

	if err := res.svc.Delete(r.Context(), id); err != nil {
		res.s.internalError(w, r, err)
		return
	}
	res.s.alertHeaders(w, res.Entity, "deleted", strconv.FormatInt(id, 10))
	w.WriteHeader(http.StatusOK)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", mux.Vars(r)["id"])
	}
	return id, nil
}

// pageRequest reads page, size and sort query parameters. Page is zero-based.
func pageRequest(r *http.Request) (domain.PageRequest, error) {
	q := r.URL.Query()
	pr := domain.PageRequest{Size: domain.DefaultPageSize}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return pr, fmt.Errorf("invalid page %q", v)
		}
		pr.Page = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return pr, fmt.Errorf("invalid size %q", v)
		}
		pr.Size = n
	}
	sort, err := domain.ParseSort(q["sort"])
	if err != nil {
		return pr, err
	}
	pr.Sort = sort
	return pr.Normalize(), nil
}
