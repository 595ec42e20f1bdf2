package samizdat

// Built-in classes (spec.md §2 step 3, §3.2). All of them are core
// classes in the sense class.go's TotalOrder already assumes (secret ==
// nil); opaque derived-data classes with a real secret are a user-level
// concept bootstrap never needs to construct.
var (
	clsClass  *Class
	clsValue  *Class
	clsCore   *Class
	clsData   *Class
	clsSymbol *Class

	clsInt         *Class
	clsString      *Class
	clsList        *Class
	clsMap         *Class
	clsSymbolTable *Class
	clsRecord      *Class

	clsUniqlet *Class
	clsJump    *Class

	clsBox     *Class
	clsCell    *Class
	clsPromise *Class
	clsResult  *Class

	clsBuiltin     *Class
	clsClosure     *Class
	clsLookupCache *Class
)

// Selector symbols bound into the core classes' method tables at
// bootstrap, exercised by MethodCall dispatch rather than direct Go
// interface calls (spec.md §4.2, scenario E's inheritance walk).
var (
	symCall        *Symbol
	symDebugString *Symbol
	symFetch       *Symbol
	symStore       *Symbol
	symNextValue   *Symbol
	symCollect     *Symbol
)

func init() {
	registerModule("classTree", nil, bootstrapClassTree)
	registerModule("stringSingletons", []string{"classTree"}, initStringSingletons)
	registerModule("listSingletons", []string{"classTree"}, initListSingletons)
	registerModule("mapSingletons", []string{"classTree"}, initMapSingletons)
	registerModule("symbolTableSingletons", []string{"classTree"}, initSymbolTableSingletons)
	registerModule("mapCache", []string{"classTree"}, initMapCache)
	registerModule("lookupCacheSingleton", []string{"classTree", "mapCache"}, initLookupCacheSingleton)
	registerModule("coreMethods", []string{"classTree"}, bindCoreMethods)
}

// bootstrapClassTree builds the class tree by hand, resolving the
// chicken-and-egg problem that every class needs a Symbol for its name,
// but interning a Symbol needs clsSymbol to exist, and clsClass needs to
// be its own class: clsClass is spliced together directly, then
// clsValue/clsCore/clsData/clsSymbol are built nameless, then — once
// clsSymbol exists and symbolFromString works — every nameless class
// gets its name assigned retroactively.
func bootstrapClassTree() {
	clsClass = &Class{}
	register(clsClass, clsClass)
	Immortalize(clsClass)
	clsClass.id = nextClassID
	nextClassID++

	clsValue = makeClass(nil, nil, nil)
	clsCore = makeClass(nil, clsValue, nil)
	clsData = makeClass(nil, clsCore, nil)
	clsClass.parent = clsCore
	clsSymbol = makeClass(nil, clsData, nil)

	clsClass.name = symbolFromString("Class")
	clsValue.name = symbolFromString("Value")
	clsCore.name = symbolFromString("Core")
	clsData.name = symbolFromString("Data")
	clsSymbol.name = symbolFromString("Symbol")

	clsInt = makeClass(symbolFromString("Int"), clsData, nil)
	clsString = makeClass(symbolFromString("String"), clsData, nil)
	clsList = makeClass(symbolFromString("List"), clsData, nil)
	clsMap = makeClass(symbolFromString("Map"), clsData, nil)
	clsSymbolTable = makeClass(symbolFromString("SymbolTable"), clsData, nil)
	clsRecord = makeClass(symbolFromString("Record"), clsData, nil)

	clsUniqlet = makeClass(symbolFromString("Uniqlet"), clsCore, nil)
	clsJump = makeClass(symbolFromString("Jump"), clsCore, nil)

	clsBox = makeClass(symbolFromString("Box"), clsCore, nil)
	clsCell = makeClass(symbolFromString("Cell"), clsBox, nil)
	clsPromise = makeClass(symbolFromString("Promise"), clsBox, nil)
	clsResult = makeClass(symbolFromString("Result"), clsBox, nil)

	clsBuiltin = makeClass(symbolFromString("Builtin"), clsCore, nil)
	clsClosure = makeClass(symbolFromString("Closure"), clsCore, nil)
	clsLookupCache = makeClass(symbolFromString("LookupCache"), clsCore, nil)

	symCall = symbolFromString("call")
	symDebugString = symbolFromString("debugString")
	symFetch = symbolFromString("fetch")
	symStore = symbolFromString("store")
	symNextValue = symbolFromString("nextValue")
	symCollect = symbolFromString("collect")
}

// bindCoreMethods wires the handful of selectors the interpreter and
// embedders dispatch by name rather than by Go type switch, so that
// method-table inheritance (a binding on Data is visible to a class
// derived from it with no override of its own) is real, observable
// behavior and not just an implementation detail of Call/MethodCall
// (spec.md §8 scenario E).
func bindCoreMethods() {
	clsData.bindMethod(symDebugString, func(receiver Value, args []Value) Value {
		return StringFromUtf8([]byte(receiver.DebugString()))
	})
	clsCore.bindMethod(symDebugString, func(receiver Value, args []Value) Value {
		return StringFromUtf8([]byte(receiver.DebugString()))
	})

	clsBox.bindMethod(symFetch, func(receiver Value, args []Value) Value {
		return receiver.(*Box).Fetch()
	})
	clsBox.bindMethod(symStore, func(receiver Value, args []Value) Value {
		if len(args) != 1 {
			fatalf("store requires exactly one argument, got %d", len(args))
		}
		receiver.(*Box).Store(args[0])
		return args[0]
	})
	clsBox.bindMethod(symNextValue, func(receiver Value, args []Value) Value {
		return receiver.(*Box).NextValue()
	})

	clsClosure.bindMethod(symCall, func(receiver Value, args []Value) Value {
		return receiver.(*Closure).invoke(args)
	})
	clsBuiltin.bindMethod(symCall, func(receiver Value, args []Value) Value {
		return receiver.(*Builtin).invoke(args)
	})
	clsJump.bindMethod(symCall, func(receiver Value, args []Value) Value {
		return receiver.(*Jump).Call(args)
	})

	clsList.bindMethod(symCollect, func(receiver Value, args []Value) Value {
		if len(args) != 1 {
			fatalf("collect requires exactly one argument, got %d", len(args))
		}
		fn := args[0]
		return receiver.(*List).Collect(func(v Value) Value {
			return Call(fn, []Value{v})
		})
	})
}
