package dynmsg

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Registry indexes message descriptors by their fully qualified name.
// It is immutable after construction and can be shared between goroutines.
type Registry struct {
	files *protoregistry.Files

	// fully qualified names in file order, then declaration order
	messages []protoreflect.FullName

	// message names declared per file path, in the same order
	byFile map[string][]protoreflect.FullName
	paths  []string
}

// LoadRegistry parses a serialized FileDescriptorSet, as written by
// `protoc --descriptor_set_out`, and builds a Registry from it.
func LoadRegistry(data []byte) (*Registry, error) {
	var set descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse file descriptor set: %w", err)
	}

	return NewRegistryFromSet(&set)
}

// NewRegistryFromSet links the files of a FileDescriptorSet and builds a Registry.
// Imports must be part of the set. Type references are linked by name, which
// makes forward and recursive references work.
func NewRegistryFromSet(set *descriptorpb.FileDescriptorSet) (*Registry, error) {
	files, err := protodesc.NewFiles(set)
	if err != nil {
		return nil, fmt.Errorf("link file descriptor set: %w", err)
	}

	// keep the order of the set instead of the registries iteration order
	var ordered []protoreflect.FileDescriptor
	for _, fdp := range set.GetFile() {
		fd, err := files.FindFileByPath(fdp.GetName())
		if err != nil {
			return nil, fmt.Errorf("lookup file %q: %w", fdp.GetName(), err)
		}

		ordered = append(ordered, fd)
	}

	return newRegistry(files, ordered), nil
}

// NewRegistry builds a Registry from already linked file descriptors, e.g. those of
// generated code.
func NewRegistry(fds ...protoreflect.FileDescriptor) (*Registry, error) {
	files := new(protoregistry.Files)
	for _, fd := range fds {
		if err := files.RegisterFile(fd); err != nil {
			return nil, fmt.Errorf("register file %q: %w", fd.Path(), err)
		}
	}

	return newRegistry(files, fds), nil
}

func newRegistry(files *protoregistry.Files, ordered []protoreflect.FileDescriptor) *Registry {
	reg := &Registry{
		files:  files,
		byFile: map[string][]protoreflect.FullName{},
	}

	for _, fd := range ordered {
		var names []protoreflect.FullName
		collectMessages(fd.Messages(), &names)

		reg.paths = append(reg.paths, fd.Path())
		reg.byFile[fd.Path()] = names
		reg.messages = append(reg.messages, names...)
	}

	return reg
}

// collectMessages walks the messages depth first. Synthetic map entry messages
// are skipped, they are not types anybody decodes.
func collectMessages(mds protoreflect.MessageDescriptors, names *[]protoreflect.FullName) {
	for idx := range mds.Len() {
		md := mds.Get(idx)
		if md.IsMapEntry() {
			continue
		}

		*names = append(*names, md.FullName())
		collectMessages(md.Messages(), names)
	}
}

// Resolve looks up a message descriptor by its fully qualified name.
// A leading dot, as used in field type names, is accepted.
func (r *Registry) Resolve(name string) (protoreflect.MessageDescriptor, error) {
	fullName := protoreflect.FullName(trimDot(name))

	desc, err := r.files.FindDescriptorByName(fullName)
	if err != nil {
		return nil, UnknownTypeError{Name: string(fullName)}
	}

	md, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		// a descriptor exists, but it is an enum or a service
		return nil, UnknownTypeError{Name: string(fullName)}
	}

	return md, nil
}

// Messages returns the fully qualified name of every message, including nested
// messages, in file and declaration order.
func (r *Registry) Messages() []string {
	names := make([]string, 0, len(r.messages))
	for _, name := range r.messages {
		names = append(names, string(name))
	}

	return names
}

// Files returns the paths of all files in the registry.
func (r *Registry) Files() []string {
	return append([]string(nil), r.paths...)
}

// MessagesOf returns the fully qualified names of the messages declared in a file.
func (r *Registry) MessagesOf(path string) []string {
	var names []string
	for _, name := range r.byFile[path] {
		names = append(names, string(name))
	}

	return names
}

func trimDot(name string) string {
	if len(name) > 0 && name[0] == '.' {
		return name[1:]
	}

	return name
}
