package session

import (
	"fmt"

	"tabstrip/internal/model"
)

// OpKind names one user gesture.
type OpKind string

const (
	OpAdd       OpKind = "add"
	OpDrag      OpKind = "drag"
	OpSelect    OpKind = "select"
	OpSetFirst  OpKind = "first"
	OpRename    OpKind = "rename"
	OpCopy      OpKind = "copy"
	OpDuplicate OpKind = "duplicate"
	OpDelete    OpKind = "delete"
)

// AppendIndex as an add index places the new tab at the end.
const AppendIndex = -1

// Op is one gesture translated by the shell. Only the fields relevant to Kind
// are read.
type Op struct {
	Kind OpKind

	// ID is the target tab (select, first, rename, copy, duplicate, delete).
	ID string
	// Index is the insert position (add) or drag source (drag).
	// For add, AppendIndex means "append".
	Index int
	// To is the drag destination.
	To int
	// Label is the new label (add, rename). Empty on add means "Page N".
	Label string
	Icon  model.Icon
}

func Add(index int, label string, icon model.Icon) Op {
	return Op{Kind: OpAdd, Index: index, Label: label, Icon: icon}
}

func Drag(from, to int) Op       { return Op{Kind: OpDrag, Index: from, To: to} }
func Select(id string) Op        { return Op{Kind: OpSelect, ID: id} }
func SetFirst(id string) Op      { return Op{Kind: OpSetFirst, ID: id} }
func Rename(id, label string) Op { return Op{Kind: OpRename, ID: id, Label: label} }
func Copy(id string) Op          { return Op{Kind: OpCopy, ID: id} }
func Duplicate(id string) Op     { return Op{Kind: OpDuplicate, ID: id} }
func Delete(id string) Op        { return Op{Kind: OpDelete, ID: id} }

func (o Op) String() string {
	switch o.Kind {
	case OpAdd:
		return fmt.Sprintf("add(%d, %q)", o.Index, o.Label)
	case OpDrag:
		return fmt.Sprintf("drag(%d, %d)", o.Index, o.To)
	case OpRename:
		return fmt.Sprintf("rename(%s, %q)", o.ID, o.Label)
	default:
		return fmt.Sprintf("%s(%s)", o.Kind, o.ID)
	}
}

// MenuAction is an entry of the per-tab context menu.
type MenuAction string

const (
	MenuSetFirst  MenuAction = "set_first"
	MenuRename    MenuAction = "rename"
	MenuCopy      MenuAction = "copy"
	MenuDuplicate MenuAction = "duplicate"
	MenuDelete    MenuAction = "delete"
)

// MenuActions lists the context menu in display order.
func MenuActions() []MenuAction {
	return []MenuAction{MenuSetFirst, MenuRename, MenuCopy, MenuDuplicate, MenuDelete}
}

func (a MenuAction) Title() string {
	switch a {
	case MenuSetFirst:
		return "Set as first page"
	case MenuRename:
		return "Rename"
	case MenuCopy:
		return "Copy"
	case MenuDuplicate:
		return "Duplicate"
	case MenuDelete:
		return "Delete"
	default:
		return string(a)
	}
}

// Op maps a menu action on tab id to its gesture. Rename needs the new label
// and is built by the caller once input is complete.
func (a MenuAction) Op(id string) (Op, bool) {
	switch a {
	case MenuSetFirst:
		return SetFirst(id), true
	case MenuCopy:
		return Copy(id), true
	case MenuDuplicate:
		return Duplicate(id), true
	case MenuDelete:
		return Delete(id), true
	default:
		return Op{}, false
	}
}
