package schema

import "github.com/scimcore/scim/scimerr"

func wrapDuplicate(name string) error {
	return scimerr.Wrap(scimerr.ErrDuplicateAttribute, "%q", name)
}
