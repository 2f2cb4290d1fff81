// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scalar

// arityShape classifies how a FuncKind's argument list is laid out, so
// arity()/child()/map() can be implemented once per shape instead of once
// per variant.
type arityShape byte

const (
	// shapeFixed takes exactly fixed Scalar children (fixed may be 0).
	shapeFixed arityShape = iota
	// shapeVariadic takes zero or more Scalar children, all of the same
	// role (Coalesce, ConcatString, Hash, Greatest, Least).
	shapeVariadic
	// shapeInVariadic takes one fixed child followed by a variadic tail
	// (IN's probe value, then its candidate list).
	shapeInVariadic
	// shapeOptionalTail takes `fixed` required children plus one
	// optional trailing child (TRIM's optional cutset, SUBSTR's
	// optional length).
	shapeOptionalTail
	// shapeCaseNoValue takes a variadic list of (condition, result)
	// pairs plus a default, flattened per the CASE indexing convention.
	shapeCaseNoValue
	// shapeCaseWithValue is shapeCaseNoValue with a leading scrutinee.
	shapeCaseWithValue
)

// resultRule classifies how a FuncKind's result type is derived.
type resultRule byte

const (
	resBool resultRule = iota
	resDate
	resF64
	resI64
	resString
	resTimestamp
	// resFirstArg is Coalesce/Greatest/Least: the type of the first
	// variadic argument.
	resFirstArg
	// resDesignated is Case*/If/Ifnull/Nullif: the type of the first
	// value-producing branch (see Scalar.resultType for the exact child
	// picked per variant).
	resDesignated
)

type funcMeta struct {
	name        string
	shape       arityShape
	fixed       int
	hasDatePart bool
	result      resultRule
}

var funcTable = [numFuncKind]funcMeta{
	FuncCurrentDate: {name: "CurrentDate", shape: shapeFixed, fixed: 0, hasDatePart: false, result: resDate},
	FuncCurrentTimestamp: {name: "CurrentTimestamp", shape: shapeFixed, fixed: 0, hasDatePart: false, result: resTimestamp},
	FuncXid: {name: "Xid", shape: shapeFixed, fixed: 0, hasDatePart: false, result: resI64},
	FuncCoalesce: {name: "Coalesce", shape: shapeVariadic, fixed: 0, hasDatePart: false, result: resFirstArg},
	FuncConcatString: {name: "ConcatString", shape: shapeVariadic, fixed: 0, hasDatePart: false, result: resString},
	FuncHash: {name: "Hash", shape: shapeVariadic, fixed: 0, hasDatePart: false, result: resI64},
	FuncGreatest: {name: "Greatest", shape: shapeVariadic, fixed: 0, hasDatePart: false, result: resFirstArg},
	FuncLeast: {name: "Least", shape: shapeVariadic, fixed: 0, hasDatePart: false, result: resFirstArg},
	FuncAbsDouble: {name: "AbsDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncAbsInt64: {name: "AbsInt64", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resI64},
	FuncAcosDouble: {name: "AcosDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncAcoshDouble: {name: "AcoshDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncAsinDouble: {name: "AsinDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncAsinhDouble: {name: "AsinhDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncAtanDouble: {name: "AtanDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncAtanhDouble: {name: "AtanhDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncByteLengthString: {name: "ByteLengthString", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resI64},
	FuncCeilDouble: {name: "CeilDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncCharLengthString: {name: "CharLengthString", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resI64},
	FuncChrString: {name: "ChrString", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resString},
	FuncCosDouble: {name: "CosDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncCoshDouble: {name: "CoshDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncDateFromTimestamp: {name: "DateFromTimestamp", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resDate},
	FuncDateFromUnixDate: {name: "DateFromUnixDate", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resDate},
	FuncDecimalLogarithmDouble: {name: "DecimalLogarithmDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncExpDouble: {name: "ExpDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncExtractDateFromTimestamp: {name: "ExtractDateFromTimestamp", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resDate},
	FuncFloorDouble: {name: "FloorDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncGetVar: {name: "GetVar", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resI64},
	FuncIsFalse: {name: "IsFalse", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resBool},
	FuncIsInf: {name: "IsInf", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resBool},
	FuncIsNan: {name: "IsNan", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resBool},
	FuncIsNull: {name: "IsNull", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resBool},
	FuncIsTrue: {name: "IsTrue", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resBool},
	FuncLengthString: {name: "LengthString", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resI64},
	FuncLowerString: {name: "LowerString", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resString},
	FuncNaturalLogarithmDouble: {name: "NaturalLogarithmDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncNextVal: {name: "NextVal", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resI64},
	FuncNot: {name: "Not", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resBool},
	FuncReverseString: {name: "ReverseString", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resString},
	FuncRoundDouble: {name: "RoundDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncSignDouble: {name: "SignDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncSignInt64: {name: "SignInt64", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resI64},
	FuncSinDouble: {name: "SinDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncSinhDouble: {name: "SinhDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncSqrtDouble: {name: "SqrtDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncStringFromDate: {name: "StringFromDate", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resString},
	FuncStringFromTimestamp: {name: "StringFromTimestamp", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resString},
	FuncTanDouble: {name: "TanDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncTanhDouble: {name: "TanhDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncTimestampFromDate: {name: "TimestampFromDate", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resTimestamp},
	FuncTimestampFromString: {name: "TimestampFromString", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resTimestamp},
	FuncTimestampFromUnixMicrosInt64: {name: "TimestampFromUnixMicrosInt64", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resTimestamp},
	FuncTruncDouble: {name: "TruncDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncUnaryMinusDouble: {name: "UnaryMinusDouble", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resF64},
	FuncUnaryMinusInt64: {name: "UnaryMinusInt64", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resI64},
	FuncUnixDate: {name: "UnixDate", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resI64},
	FuncUnixMicrosFromTimestamp: {name: "UnixMicrosFromTimestamp", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resI64},
	FuncUpperString: {name: "UpperString", shape: shapeFixed, fixed: 1, hasDatePart: false, result: resString},
	FuncDateTruncDate: {name: "DateTruncDate", shape: shapeFixed, fixed: 1, hasDatePart: true, result: resDate},
	FuncExtractFromDate: {name: "ExtractFromDate", shape: shapeFixed, fixed: 1, hasDatePart: true, result: resI64},
	FuncExtractFromTimestamp: {name: "ExtractFromTimestamp", shape: shapeFixed, fixed: 1, hasDatePart: true, result: resI64},
	FuncTimestampTrunc: {name: "TimestampTrunc", shape: shapeFixed, fixed: 1, hasDatePart: true, result: resTimestamp},
	FuncIn: {name: "In", shape: shapeInVariadic, fixed: 1, hasDatePart: false, result: resBool},
	FuncAddDouble: {name: "AddDouble", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resF64},
	FuncAddInt64: {name: "AddInt64", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resI64},
	FuncAnd: {name: "And", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resBool},
	FuncAtan2Double: {name: "Atan2Double", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resF64},
	FuncDivideDouble: {name: "DivideDouble", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resF64},
	FuncDivInt64: {name: "DivInt64", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resI64},
	FuncEndsWithString: {name: "EndsWithString", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resBool},
	FuncEqual: {name: "Equal", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resBool},
	FuncFormatDate: {name: "FormatDate", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resString},
	FuncFormatTimestamp: {name: "FormatTimestamp", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resString},
	FuncGreater: {name: "Greater", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resBool},
	FuncGreaterOrEqual: {name: "GreaterOrEqual", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resBool},
	FuncIfnull: {name: "Ifnull", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resDesignated},
	FuncIs: {name: "Is", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resBool},
	FuncLeftString: {name: "LeftString", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resString},
	FuncLess: {name: "Less", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resBool},
	FuncLessOrEqual: {name: "LessOrEqual", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resBool},
	FuncLogarithmDouble: {name: "LogarithmDouble", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resF64},
	FuncLtrimString: {name: "LtrimString", shape: shapeOptionalTail, fixed: 1, hasDatePart: false, result: resString},
	FuncModInt64: {name: "ModInt64", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resI64},
	FuncMultiplyDouble: {name: "MultiplyDouble", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resF64},
	FuncMultiplyInt64: {name: "MultiplyInt64", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resI64},
	FuncNotEqual: {name: "NotEqual", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resBool},
	FuncNullif: {name: "Nullif", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resDesignated},
	FuncOr: {name: "Or", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resBool},
	FuncParseDate: {name: "ParseDate", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resDate},
	FuncParseTimestamp: {name: "ParseTimestamp", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resTimestamp},
	FuncPowDouble: {name: "PowDouble", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resF64},
	FuncRegexpContainsString: {name: "RegexpContainsString", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resBool},
	FuncRegexpExtractString: {name: "RegexpExtractString", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resString},
	FuncRepeatString: {name: "RepeatString", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resString},
	FuncRightString: {name: "RightString", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resString},
	FuncRoundWithDigitsDouble: {name: "RoundWithDigitsDouble", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resF64},
	FuncRtrimString: {name: "RtrimString", shape: shapeOptionalTail, fixed: 1, hasDatePart: false, result: resString},
	FuncStartsWithString: {name: "StartsWithString", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resBool},
	FuncStringLike: {name: "StringLike", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resBool},
	FuncStrposString: {name: "StrposString", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resI64},
	FuncSubtractDouble: {name: "SubtractDouble", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resF64},
	FuncSubtractInt64: {name: "SubtractInt64", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resI64},
	FuncTrimString: {name: "TrimString", shape: shapeOptionalTail, fixed: 1, hasDatePart: false, result: resString},
	FuncTruncWithDigitsDouble: {name: "TruncWithDigitsDouble", shape: shapeFixed, fixed: 2, hasDatePart: false, result: resF64},
	FuncDateAddDate: {name: "DateAddDate", shape: shapeFixed, fixed: 2, hasDatePart: true, result: resDate},
	FuncDateDiffDate: {name: "DateDiffDate", shape: shapeFixed, fixed: 2, hasDatePart: true, result: resI64},
	FuncDateSubDate: {name: "DateSubDate", shape: shapeFixed, fixed: 2, hasDatePart: true, result: resDate},
	FuncTimestampAdd: {name: "TimestampAdd", shape: shapeFixed, fixed: 2, hasDatePart: true, result: resTimestamp},
	FuncTimestampDiff: {name: "TimestampDiff", shape: shapeFixed, fixed: 2, hasDatePart: true, result: resI64},
	FuncTimestampSub: {name: "TimestampSub", shape: shapeFixed, fixed: 2, hasDatePart: true, result: resTimestamp},
	FuncBetween: {name: "Between", shape: shapeFixed, fixed: 3, hasDatePart: false, result: resBool},
	FuncDateFromYearMonthDay: {name: "DateFromYearMonthDay", shape: shapeFixed, fixed: 3, hasDatePart: false, result: resDate},
	FuncIf: {name: "If", shape: shapeFixed, fixed: 3, hasDatePart: false, result: resDesignated},
	FuncLpadString: {name: "LpadString", shape: shapeFixed, fixed: 3, hasDatePart: false, result: resString},
	FuncRegexpReplaceString: {name: "RegexpReplaceString", shape: shapeFixed, fixed: 3, hasDatePart: false, result: resString},
	FuncReplaceString: {name: "ReplaceString", shape: shapeFixed, fixed: 3, hasDatePart: false, result: resString},
	FuncRpadString: {name: "RpadString", shape: shapeFixed, fixed: 3, hasDatePart: false, result: resString},
	FuncSubstrString: {name: "SubstrString", shape: shapeOptionalTail, fixed: 2, hasDatePart: false, result: resString},
	FuncCaseNoValue: {name: "CaseNoValue", shape: shapeCaseNoValue, fixed: 0, hasDatePart: false, result: resDesignated},
	FuncCaseWithValue: {name: "CaseWithValue", shape: shapeCaseWithValue, fixed: 0, hasDatePart: false, result: resDesignated},
}
