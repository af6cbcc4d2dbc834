package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "sitecms:"

// UUID derives a deterministic UUID from a stable key using go-hashid.
// Keys must be prefixed by entity type so different entities never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// RecordUUID is the id of the locale variant of a translation group. Two
// rows for the same group and locale therefore share a primary key.
func RecordUUID(groupID uuid.UUID, locale string) uuid.UUID {
	return UUID(namespace + "record:" + groupID.String() + ":" + normalize(locale))
}

// ImportedGroupUUID identifies the translation group of content pulled from
// an external source (for example a WordPress post id).
func ImportedGroupUUID(source, externalID string) uuid.UUID {
	return UUID(namespace + "import:" + normalize(source) + ":" + strings.TrimSpace(externalID))
}

// PageTitleUUID is the id of a page title override for a page key and locale.
func PageTitleUUID(pageKey, locale string) uuid.UUID {
	return UUID(namespace + "page_title:" + normalize(pageKey) + ":" + normalize(locale))
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
