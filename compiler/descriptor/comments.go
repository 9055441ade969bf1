package descriptor

import (
	"strconv"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// Comment is the raw source comment attached to one structural location.
type Comment struct {
	// Leading is the comment block immediately preceding the element.
	Leading string
	// Detached are comment blocks separated from the element (and from
	// each other) by blank lines, in source order.
	Detached []string
}

// CommentsAt returns the comment attached to the given structural field
// path, e.g. CommentsAt(SyntaxFieldNumber) for the file's syntax marker.
// The second result reports whether any comment text exists there.
func (f *File) CommentsAt(path ...int32) (Comment, bool) {
	c, ok := f.comments[pathKey(path)]
	if !ok || c == nil {
		return Comment{}, false
	}
	if c.Leading == "" && len(c.Detached) == 0 {
		return Comment{}, false
	}
	return *c, true
}

func indexComments(info *descriptorpb.SourceCodeInfo) map[string]*Comment {
	comments := make(map[string]*Comment)
	for _, loc := range info.GetLocation() {
		if loc.GetLeadingComments() == "" && len(loc.GetLeadingDetachedComments()) == 0 {
			continue
		}
		comments[pathKey(loc.GetPath())] = &Comment{
			Leading:  loc.GetLeadingComments(),
			Detached: loc.GetLeadingDetachedComments(),
		}
	}
	return comments
}

func pathKey(path []int32) string {
	var b strings.Builder
	for i, p := range path {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(p)))
	}
	return b.String()
}
