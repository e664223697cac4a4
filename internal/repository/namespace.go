package repository

import (
	"context"
	"fmt"
)

// NamespacedDAO prefixes every key so several profiles can share one store.
type NamespacedDAO struct {
	dao       RecordDAO
	namespace string
}

func NewNamespacedDAO(dao RecordDAO, profileID string) *NamespacedDAO {
	return &NamespacedDAO{
		dao:       dao,
		namespace: ProfileNamespace(profileID),
	}
}

// ProfileNamespace returns the key prefix of a profile. The default profile
// is not prefixed so its keys match the plain record names.
func ProfileNamespace(profileID string) string {
	if profileID == "" || profileID == DefaultProfile {
		return ""
	}

	return fmt.Sprintf("profile/%s/", profileID)
}

const DefaultProfile = "default"

func (d *NamespacedDAO) Get(ctx context.Context, key string) (string, error) {
	return d.dao.Get(ctx, d.namespace+key)
}

func (d *NamespacedDAO) Set(ctx context.Context, key, value string) error {
	return d.dao.Set(ctx, d.namespace+key, value)
}

func (d *NamespacedDAO) Remove(ctx context.Context, key string) error {
	return d.dao.Remove(ctx, d.namespace+key)
}
