package analyze

// KnownType declares a type the model can resolve without seeing its source.
type KnownType struct {
	Name string   // qualified metadata name, e.g. "UnityEngine.Vector3" or "List`1"
	Kind TypeKind // value, string, class or interface
}

// predefinedTypes maps C# keywords to their System types.
var predefinedTypes = map[string]string{
	"bool":    "System.Boolean",
	"byte":    "System.Byte",
	"sbyte":   "System.SByte",
	"char":    "System.Char",
	"short":   "System.Int16",
	"ushort":  "System.UInt16",
	"int":     "System.Int32",
	"uint":    "System.UInt32",
	"long":    "System.Int64",
	"ulong":   "System.UInt64",
	"nint":    "System.IntPtr",
	"nuint":   "System.UIntPtr",
	"float":   "System.Single",
	"double":  "System.Double",
	"decimal": "System.Decimal",
	"string":  "System.String",
	"object":  "System.Object",
	"dynamic": "System.Object",
}

// BuiltinTypes is the table of framework types every model starts with.
var BuiltinTypes = []KnownType{
	{Name: "System.Boolean", Kind: TypeKindValue},
	{Name: "System.Byte", Kind: TypeKindValue},
	{Name: "System.SByte", Kind: TypeKindValue},
	{Name: "System.Char", Kind: TypeKindValue},
	{Name: "System.Int16", Kind: TypeKindValue},
	{Name: "System.UInt16", Kind: TypeKindValue},
	{Name: "System.Int32", Kind: TypeKindValue},
	{Name: "System.UInt32", Kind: TypeKindValue},
	{Name: "System.Int64", Kind: TypeKindValue},
	{Name: "System.UInt64", Kind: TypeKindValue},
	{Name: "System.IntPtr", Kind: TypeKindValue},
	{Name: "System.UIntPtr", Kind: TypeKindValue},
	{Name: "System.Single", Kind: TypeKindValue},
	{Name: "System.Double", Kind: TypeKindValue},
	{Name: "System.Decimal", Kind: TypeKindValue},
	{Name: "System.String", Kind: TypeKindString},
	{Name: "System.Object", Kind: TypeKindClass},
	{Name: "System.DateTime", Kind: TypeKindValue},
	{Name: "System.DateTimeOffset", Kind: TypeKindValue},
	{Name: "System.TimeSpan", Kind: TypeKindValue},
	{Name: "System.Guid", Kind: TypeKindValue},
	{Name: "System.Nullable`1", Kind: TypeKindValue},
	{Name: "System.ValueTuple`2", Kind: TypeKindValue},
	{Name: "System.Collections.Generic.List`1", Kind: TypeKindClass},
	{Name: "System.Collections.Generic.Dictionary`2", Kind: TypeKindClass},
	{Name: "System.Collections.Generic.HashSet`1", Kind: TypeKindClass},
	{Name: "System.Collections.Generic.Queue`1", Kind: TypeKindClass},
	{Name: "System.Collections.Generic.Stack`1", Kind: TypeKindClass},
	{Name: "System.Collections.Generic.KeyValuePair`2", Kind: TypeKindValue},
	{Name: "System.Collections.Generic.IEnumerable`1", Kind: TypeKindInterface},
	{Name: "System.Collections.Generic.IReadOnlyList`1", Kind: TypeKindInterface},
	{Name: "System.Collections.Generic.IReadOnlyDictionary`2", Kind: TypeKindInterface},
	{Name: "UnityEngine.Vector2", Kind: TypeKindValue},
	{Name: "UnityEngine.Vector3", Kind: TypeKindValue},
	{Name: "UnityEngine.Vector4", Kind: TypeKindValue},
	{Name: "UnityEngine.Vector2Int", Kind: TypeKindValue},
	{Name: "UnityEngine.Vector3Int", Kind: TypeKindValue},
	{Name: "UnityEngine.Quaternion", Kind: TypeKindValue},
	{Name: "UnityEngine.Color", Kind: TypeKindValue},
	{Name: "UnityEngine.Color32", Kind: TypeKindValue},
	{Name: "UnityEngine.Rect", Kind: TypeKindValue},
	{Name: "UnityEngine.Bounds", Kind: TypeKindValue},
	{Name: "UnityEngine.LayerMask", Kind: TypeKindValue},
	{Name: "UnityEngine.AnimationCurve", Kind: TypeKindClass},
	{Name: "UnityEngine.Gradient", Kind: TypeKindClass},
}
