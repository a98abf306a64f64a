package adapters

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"hostdeps/internal/core"
	"hostdeps/internal/ports"
	"hostdeps/internal/types"
)

// ManifestParserAdapter decodes deps.json documents. JSON is a subset of the
// YAML flow syntax, so the document is decoded into yaml.v3 nodes, which keep
// the key order of every object.
type ManifestParserAdapter struct{}

func NewManifestParserAdapter() ManifestParserAdapter {
	return ManifestParserAdapter{}
}

type nodePair struct {
	key   string
	value *yaml.Node
}

func (a ManifestParserAdapter) Parse(source string, origin types.ManifestOrigin, data []byte) (types.Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return types.Manifest{}, core.MalformedManifest(source, "invalid document", err)
	}
	root := resolveNode(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return types.Manifest{}, core.MalformedManifest(source, "document is not an object")
	}

	manifest := types.Manifest{Source: source, Origin: origin}
	var targetsNode, librariesNode, runtimesNode *yaml.Node
	for _, pair := range mappingPairs(root) {
		switch pair.key {
		case "runtimeTarget":
			manifest.RuntimeTarget = parseRuntimeTarget(pair.value)
		case "targets":
			targetsNode = pair.value
		case "libraries":
			librariesNode = pair.value
		case "runtimes":
			runtimesNode = pair.value
		}
	}

	if targetsNode == nil || targetsNode.Kind != yaml.MappingNode {
		return types.Manifest{}, core.MalformedManifest(source, "targets section is missing")
	}
	if librariesNode == nil || librariesNode.Kind != yaml.MappingNode {
		return types.Manifest{}, core.MalformedManifest(source, "libraries section is missing")
	}

	for _, pair := range mappingPairs(targetsNode) {
		section, err := parseTargetSection(source, pair)
		if err != nil {
			return types.Manifest{}, err
		}
		manifest.Targets = append(manifest.Targets, section)
	}
	if len(manifest.Targets) == 0 {
		return types.Manifest{}, core.MalformedManifest(source, "targets section is empty")
	}

	for _, pair := range mappingPairs(librariesNode) {
		entry, err := parseLibraryEntry(source, pair)
		if err != nil {
			return types.Manifest{}, err
		}
		manifest.Libraries = append(manifest.Libraries, entry)
	}

	if runtimesNode != nil {
		runtimes, err := parseRuntimes(source, runtimesNode)
		if err != nil {
			return types.Manifest{}, err
		}
		manifest.Runtimes = runtimes
	}
	return manifest, nil
}

func parseRuntimeTarget(node *yaml.Node) types.RuntimeTarget {
	switch node.Kind {
	case yaml.ScalarNode:
		return types.RuntimeTarget{Name: strings.TrimSpace(node.Value)}
	case yaml.MappingNode:
		target := types.RuntimeTarget{}
		for _, pair := range mappingPairs(node) {
			switch pair.key {
			case "name":
				target.Name = strings.TrimSpace(scalarString(pair.value))
			case "signature":
				target.Signature = scalarString(pair.value)
			}
		}
		return target
	default:
		return types.RuntimeTarget{}
	}
}

func parseTargetSection(source string, pair nodePair) (types.TargetSection, error) {
	name := strings.TrimSpace(pair.key)
	if name == "" {
		return types.TargetSection{}, core.MalformedManifest(source, "target section has an empty name")
	}
	section := types.TargetSection{Name: name}
	if isNull(pair.value) {
		return section, nil
	}
	if pair.value.Kind != yaml.MappingNode {
		return types.TargetSection{}, core.MalformedManifest(source, fmt.Sprintf("target %s is not an object", name))
	}
	for _, libPair := range mappingPairs(pair.value) {
		lib, err := parseTargetLibrary(source, name, libPair)
		if err != nil {
			return types.TargetSection{}, err
		}
		section.Libraries = append(section.Libraries, lib)
	}
	return section, nil
}

func parseTargetLibrary(source string, target string, pair nodePair) (types.TargetLibrary, error) {
	name, version, ok := splitLibraryKey(pair.key)
	if !ok {
		return types.TargetLibrary{}, core.MalformedManifest(source,
			fmt.Sprintf("target %s has invalid library key %q", target, pair.key))
	}
	lib := types.TargetLibrary{Name: name, Version: version}
	if isNull(pair.value) {
		return lib, nil
	}
	if pair.value.Kind != yaml.MappingNode {
		return types.TargetLibrary{}, core.MalformedManifest(source,
			fmt.Sprintf("target %s library %s is not an object", target, pair.key))
	}
	for _, field := range mappingPairs(pair.value) {
		switch field.key {
		case "dependencies":
			for _, dep := range mappingPairs(field.value) {
				lib.Dependencies = append(lib.Dependencies, types.Dependency{
					Name:    strings.TrimSpace(dep.key),
					Version: strings.TrimSpace(scalarString(dep.value)),
				})
			}
		case "runtime":
			lib.Assets = append(lib.Assets, plainAssets(field.value, types.AssetTypeRuntime)...)
		case "native":
			lib.Assets = append(lib.Assets, plainAssets(field.value, types.AssetTypeNative)...)
		case "resources":
			lib.Assets = append(lib.Assets, plainAssets(field.value, types.AssetTypeResource)...)
		case "compile":
			lib.Assets = append(lib.Assets, plainAssets(field.value, types.AssetTypeCompile)...)
		case "runtimeTargets":
			assets, err := runtimeTargetAssets(source, pair.key, field.value)
			if err != nil {
				return types.TargetLibrary{}, err
			}
			lib.Assets = append(lib.Assets, assets...)
		case "compileOnly":
			lib.CompileOnly = scalarBool(field.value)
		}
	}
	return lib, nil
}

// plainAssets reads an asset section without runtime identifiers. Sections
// are objects keyed by path; older manifests use plain path arrays.
func plainAssets(node *yaml.Node, assetType types.AssetType) []types.AssetReference {
	var assets []types.AssetReference
	for _, entry := range assetEntries(node) {
		asset := types.AssetReference{Path: entry.key, Type: assetType}
		applyAssetProperties(&asset, entry.value)
		assets = append(assets, asset)
	}
	return assets
}

func runtimeTargetAssets(source string, library string, node *yaml.Node) ([]types.AssetReference, error) {
	var assets []types.AssetReference
	for _, entry := range assetEntries(node) {
		asset := types.AssetReference{Path: entry.key}
		rawType := ""
		if entry.value != nil && entry.value.Kind == yaml.MappingNode {
			for _, prop := range mappingPairs(entry.value) {
				switch prop.key {
				case "rid":
					asset.RuntimeIdentifier = strings.TrimSpace(scalarString(prop.value))
				case "assetType":
					rawType = scalarString(prop.value)
				}
			}
		}
		if asset.RuntimeIdentifier == "" {
			return nil, core.MalformedManifest(source,
				fmt.Sprintf("library %s asset %s has no rid", library, entry.key))
		}
		assetType, ok := types.ParseAssetType(rawType)
		if !ok {
			return nil, core.MalformedManifest(source,
				fmt.Sprintf("library %s asset %s has no valid assetType", library, entry.key))
		}
		asset.Type = assetType
		applyAssetProperties(&asset, entry.value)
		assets = append(assets, asset)
	}
	return assets, nil
}

func applyAssetProperties(asset *types.AssetReference, node *yaml.Node) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for _, prop := range mappingPairs(node) {
		switch prop.key {
		case "assemblyVersion":
			asset.AssemblyVersion = scalarString(prop.value)
		case "fileVersion":
			asset.FileVersion = scalarString(prop.value)
		case "locale":
			asset.Locale = scalarString(prop.value)
		}
	}
}

func parseLibraryEntry(source string, pair nodePair) (types.LibraryEntry, error) {
	name, version, ok := splitLibraryKey(pair.key)
	if !ok {
		return types.LibraryEntry{}, core.MalformedManifest(source, fmt.Sprintf("invalid library key %q", pair.key))
	}
	entry := types.LibraryEntry{Name: name, Version: version}
	rawKind := ""
	if pair.value != nil && pair.value.Kind == yaml.MappingNode {
		for _, field := range mappingPairs(pair.value) {
			switch field.key {
			case "type":
				rawKind = scalarString(field.value)
			case "sha512":
				entry.Hash = scalarString(field.value)
			case "serviceable":
				entry.Serviceable = scalarBool(field.value)
			case "path":
				entry.Path = scalarString(field.value)
			case "hashPath":
				entry.HashPath = scalarString(field.value)
			}
		}
	}
	kind, ok := types.ParseLibraryKind(rawKind)
	if !ok {
		return types.LibraryEntry{}, core.MalformedManifest(source,
			fmt.Sprintf("library %s has unknown type %q", pair.key, rawKind))
	}
	entry.Kind = kind
	return entry, nil
}

func parseRuntimes(source string, node *yaml.Node) ([]types.RuntimeEntry, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, core.MalformedManifest(source, "runtimes section is not an object")
	}
	var runtimes []types.RuntimeEntry
	for _, pair := range mappingPairs(node) {
		entry := types.RuntimeEntry{RuntimeIdentifier: strings.TrimSpace(pair.key)}
		value := pair.value
		if !isNull(value) && value.Kind != yaml.SequenceNode {
			return nil, core.MalformedManifest(source, fmt.Sprintf("runtime %s fallbacks are not a list", pair.key))
		}
		if value != nil {
			for _, item := range value.Content {
				fallback := strings.TrimSpace(scalarString(resolveNode(item)))
				if fallback != "" {
					entry.Fallbacks = append(entry.Fallbacks, fallback)
				}
			}
		}
		runtimes = append(runtimes, entry)
	}
	return runtimes, nil
}

func splitLibraryKey(key string) (string, string, bool) {
	name, version, ok := strings.Cut(strings.TrimSpace(key), "/")
	name = strings.TrimSpace(name)
	version = strings.TrimSpace(version)
	if !ok || name == "" || version == "" {
		return "", "", false
	}
	return name, version, true
}

// assetEntries flattens an asset section into path entries. Array sections
// yield entries without properties.
func assetEntries(node *yaml.Node) []nodePair {
	node = resolveNode(node)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.MappingNode:
		return mappingPairs(node)
	case yaml.SequenceNode:
		var entries []nodePair
		for _, item := range node.Content {
			path := strings.TrimSpace(scalarString(resolveNode(item)))
			if path == "" {
				continue
			}
			entries = append(entries, nodePair{key: path})
		}
		return entries
	default:
		return nil
	}
}

func mappingPairs(node *yaml.Node) []nodePair {
	node = resolveNode(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	pairs := make([]nodePair, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		pairs = append(pairs, nodePair{
			key:   node.Content[i].Value,
			value: resolveNode(node.Content[i+1]),
		})
	}
	return pairs
}

func resolveNode(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch {
		case node.Kind == yaml.DocumentNode && len(node.Content) > 0:
			node = node.Content[0]
		case node.Kind == yaml.AliasNode && node.Alias != nil:
			node = node.Alias
		default:
			return node
		}
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

func scalarString(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return ""
	}
	return node.Value
}

func scalarBool(node *yaml.Node) bool {
	if node == nil || node.Kind != yaml.ScalarNode {
		return false
	}
	var value bool
	if err := node.Decode(&value); err != nil {
		return false
	}
	return value
}

var _ ports.ManifestParserPort = ManifestParserAdapter{}
