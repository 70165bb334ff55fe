package service

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type JsonPersistenceService struct {
	Directory string
}

func (s *JsonPersistenceService) NewStore(id string, subIDs ...string) Store {
	return &JsonStore{
		ID:        id,
		Directory: filepath.Join(append([]string{s.Directory}, subIDs...)...),
	}
}

type JsonStore struct {
	ID        string
	Directory string
}

func (store JsonStore) path() string {
	return filepath.Join(store.Directory, store.ID) + ".json"
}

func (store JsonStore) Load(val interface{}) error {
	if _, err := os.Stat(store.Directory); os.IsNotExist(err) {
		if err2 := os.MkdirAll(store.Directory, 0777); err2 != nil {
			return err2
		}
	}

	data, err := os.ReadFile(store.path())
	if err != nil {
		if os.IsNotExist(err) {
			return ErrPersistenceNotExists
		}

		return err
	}

	if len(data) == 0 {
		return ErrPersistenceNotExists
	}

	return json.Unmarshal(data, val)
}

func (store JsonStore) Save(val interface{}) error {
	if _, err := os.Stat(store.Directory); os.IsNotExist(err) {
		if err2 := os.MkdirAll(store.Directory, 0777); err2 != nil {
			return err2
		}
	}

	data, err := json.Marshal(val)
	if err != nil {
		return err
	}

	return os.WriteFile(store.path(), data, 0666)
}

func (store JsonStore) Reset() error {
	err := os.Remove(store.path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
