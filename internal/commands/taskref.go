package commands

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRefs splits task references out of args.
//
// A reference is the number shown by list, a full task ID, or a unique
// ID prefix. Comma-separated references are accepted too ("1,3 5").
// Resolution against the task list happens later, in resolveTasks.
func ParseTaskRefs(args []string) ([]string, error) {
	var refs []string
	for _, arg := range args {
		for _, ref := range strings.Split(arg, ",") {
			ref = strings.TrimSpace(ref)
			if ref == "" {
				continue
			}
			if strings.HasPrefix(ref, "-") {
				return nil, fmt.Errorf("invalid task reference: %s", ref)
			}
			refs = append(refs, ref)
		}
	}
	if len(refs) == 0 {
		return nil, ErrTaskRefRequired
	}
	return refs, nil
}
