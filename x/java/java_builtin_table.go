package java

import (
	"strings"

	"github.com/CodMac/mixin-lens/model"
)

// --- Java 内置符号表 ---

// builtinEntry 内置类型的种类与直接父类。Super 为空表示 java.lang.Object (或接口/Object 自身)
type builtinEntry struct {
	Kind  model.ElementKind
	Super string
}

var BuiltinTable = map[string]builtinEntry{
	// === java.lang 核心类 (默认隐式导入) ===
	"java.lang.Object":              {model.Class, ""},
	"java.lang.String":              {model.Class, ""},
	"java.lang.System":              {model.Class, ""},
	"java.lang.Number":              {model.Class, ""},
	"java.lang.Integer":             {model.Class, "java.lang.Number"},
	"java.lang.Long":                {model.Class, "java.lang.Number"},
	"java.lang.Double":              {model.Class, "java.lang.Number"},
	"java.lang.Float":               {model.Class, "java.lang.Number"},
	"java.lang.Byte":                {model.Class, "java.lang.Number"},
	"java.lang.Short":               {model.Class, "java.lang.Number"},
	"java.lang.Boolean":             {model.Class, ""},
	"java.lang.Character":           {model.Class, ""},
	"java.lang.Void":                {model.Class, ""},
	"java.lang.Math":                {model.Class, ""},
	"java.lang.Class":               {model.Class, ""},
	"java.lang.ClassLoader":         {model.Class, ""},
	"java.lang.Thread":              {model.Class, ""},
	"java.lang.ThreadGroup":         {model.Class, ""},
	"java.lang.ThreadLocal":         {model.Class, ""},
	"java.lang.StringBuilder":       {model.Class, ""},
	"java.lang.StringBuffer":        {model.Class, ""},
	"java.lang.Enum":                {model.Class, ""},
	"java.lang.Record":              {model.Class, ""},
	"java.lang.StackTraceElement":   {model.Class, ""},
	"java.lang.Iterable":            {model.Interface, ""},
	"java.lang.AutoCloseable":       {model.Interface, ""},
	"java.lang.Runnable":            {model.Interface, ""},
	"java.lang.Comparable":          {model.Interface, ""},
	"java.lang.CharSequence":        {model.Interface, ""},
	"java.lang.Cloneable":           {model.Interface, ""},
	"java.lang.Override":            {model.KAnnotation, ""},
	"java.lang.Deprecated":          {model.KAnnotation, ""},
	"java.lang.SuppressWarnings":    {model.KAnnotation, ""},
	"java.lang.SafeVarargs":         {model.KAnnotation, ""},
	"java.lang.FunctionalInterface": {model.KAnnotation, ""},

	// === java.lang 异常体系 ===
	"java.lang.Throwable":                     {model.Class, ""},
	"java.lang.Exception":                     {model.Class, "java.lang.Throwable"},
	"java.lang.Error":                         {model.Class, "java.lang.Throwable"},
	"java.lang.RuntimeException":              {model.Class, "java.lang.Exception"},
	"java.lang.NullPointerException":          {model.Class, "java.lang.RuntimeException"},
	"java.lang.IllegalArgumentException":      {model.Class, "java.lang.RuntimeException"},
	"java.lang.IllegalStateException":         {model.Class, "java.lang.RuntimeException"},
	"java.lang.IndexOutOfBoundsException":     {model.Class, "java.lang.RuntimeException"},
	"java.lang.UnsupportedOperationException": {model.Class, "java.lang.RuntimeException"},
	"java.lang.ClassCastException":            {model.Class, "java.lang.RuntimeException"},
	"java.lang.ArithmeticException":           {model.Class, "java.lang.RuntimeException"},

	// === java.util 集合框架 ===
	"java.util.Collection":         {model.Interface, ""},
	"java.util.List":               {model.Interface, ""},
	"java.util.Set":                {model.Interface, ""},
	"java.util.Map":                {model.Interface, ""},
	"java.util.Iterator":           {model.Interface, ""},
	"java.util.AbstractCollection": {model.Class, ""},
	"java.util.AbstractList":       {model.Class, "java.util.AbstractCollection"},
	"java.util.AbstractSet":        {model.Class, "java.util.AbstractCollection"},
	"java.util.ArrayList":          {model.Class, "java.util.AbstractList"},
	"java.util.LinkedList":         {model.Class, "java.util.AbstractList"},
	"java.util.HashSet":            {model.Class, "java.util.AbstractSet"},
	"java.util.TreeSet":            {model.Class, "java.util.AbstractSet"},
	"java.util.AbstractMap":        {model.Class, ""},
	"java.util.HashMap":            {model.Class, "java.util.AbstractMap"},
	"java.util.TreeMap":            {model.Class, "java.util.AbstractMap"},
	"java.util.LinkedHashMap":      {model.Class, "java.util.HashMap"},
	"java.util.Dictionary":         {model.Class, ""},
	"java.util.Hashtable":          {model.Class, "java.util.Dictionary"},
	"java.util.Properties":         {model.Class, "java.util.Hashtable"},
	"java.util.Optional":           {model.Class, ""},
	"java.util.Arrays":             {model.Class, ""},
	"java.util.Collections":        {model.Class, ""},
	"java.util.UUID":               {model.Class, ""},
	"java.util.Date":               {model.Class, ""},
	"java.util.Objects":            {model.Class, ""},
	"java.util.Random":             {model.Class, ""},

	// === java.util.function ===
	"java.util.function.Function":  {model.Interface, ""},
	"java.util.function.Consumer":  {model.Interface, ""},
	"java.util.function.Predicate": {model.Interface, ""},
	"java.util.function.Supplier":  {model.Interface, ""},

	// === java.io ===
	"java.io.InputStream":  {model.Class, ""},
	"java.io.OutputStream": {model.Class, ""},
	"java.io.File":         {model.Class, ""},
	"java.io.Serializable": {model.Interface, ""},
	"java.io.IOException":  {model.Class, "java.lang.Exception"},
}

// LookupBuiltin 按 QN 查询内置类型
func LookupBuiltin(qn string) (builtinEntry, bool) {
	e, ok := BuiltinTable[qn]
	return e, ok
}

// JavaLangQN 短名在 java.lang 中是否存在 (隐式导入)
func JavaLangQN(name string) (string, bool) {
	qn := "java.lang." + name
	if _, ok := BuiltinTable[qn]; ok {
		return qn, true
	}
	return "", false
}

// BuiltinSymbols 把内置表展开为 BUILTIN 符号。除 Object 与接口外，未写父类的类型隐式继承 Object
func BuiltinSymbols() []*model.ClassSymbol {
	out := make([]*model.ClassSymbol, 0, len(BuiltinTable))
	for qn, e := range BuiltinTable {
		super := e.Super
		if super == "" && e.Kind == model.Class && qn != JavaLangObject {
			super = JavaLangObject
		}
		out = append(out, &model.ClassSymbol{
			Kind:          e.Kind,
			Name:          model.ShortName(qn),
			QualifiedName: qn,
			Superclass:    super,
			Origin:        model.OriginBuiltin,
		})
	}
	return out
}

// isJavaLangObject 兼容写法 "Object" 与 "java.lang.Object"
func isJavaLangObject(qn string) bool {
	return qn == JavaLangObject || strings.TrimSpace(qn) == ""
}
