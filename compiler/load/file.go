package load

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Extensions of declaration files. JSON documents are read by the YAML
// decoder.
var Extensions = []string{".yaml", ".yml", ".json"}

// File is a declaration file.
type File struct {
	Name    string         `yaml:"-"`
	Package string         `yaml:"package"`
	Path    string         `yaml:"path,omitempty"`
	Types   []*Declaration `yaml:"types"`
}

// Parse decodes a declaration file. The name is used for positions.
func Parse(data []byte, name string) (*File, error) {
	f := &File{Name: name}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil {
		return nil, errors.Wrapf(err, "load: parse %s", name)
	}
	if f.Package == "" {
		return nil, errors.Newf("load: %s: missing package name", name)
	}
	Bind(name, f.Package, f.Path, f.Types...)
	return f, nil
}

// ReadFile reads and decodes a declaration file.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load: read file")
	}
	return Parse(data, path)
}

// ReadDir reads the declaration files of a directory (not recursive),
// in lexical order.
func ReadDir(dir string) ([]*File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "load: read dir")
	}
	var (
		files []*File
		errs  *multierror.Error
	)
	for _, e := range entries {
		if e.IsDir() || !IsDeclarationFile(e.Name()) {
			continue
		}
		f, err := ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		files = append(files, f)
	}
	return files, errs.ErrorOrNil()
}

// Load reads declarations from files and directories. Files that fail to
// load are reported in the returned error; declarations of the other files
// are still returned.
func Load(paths ...string) ([]*Declaration, error) {
	var (
		decls []*Declaration
		errs  *multierror.Error
	)
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			errs = multierror.Append(errs, errors.Wrap(err, "load"))
			continue
		}
		var files []*File
		if info.IsDir() {
			files, err = ReadDir(p)
		} else {
			var f *File
			if f, err = ReadFile(p); err == nil {
				files = append(files, f)
			}
		}
		if err != nil {
			errs = multierror.Append(errs, err)
		}
		for _, f := range files {
			decls = append(decls, f.Types...)
		}
	}
	return decls, errs.ErrorOrNil()
}

// IsDeclarationFile reports whether the file name has a declaration file
// extension.
func IsDeclarationFile(name string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(name)))
}

// Bind sets the package, file and enclosing chain of declarations built
// outside of Parse, e.g. by a hosting toolchain.
func Bind(file, pkg, path string, decls ...*Declaration) {
	for _, d := range decls {
		bind(d, file, pkg, path, nil)
	}
}
