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

package adapter

import (
	"github.com/zeedb/queryplanner/planerrors"
	"github.com/zeedb/queryplanner/scalar"
)

// resolveFunc picks the FuncKind a qualified name denotes, disambiguating
// overloaded names by return type, first-argument type, or argument
// count exactly as the Analyzer's own function catalog does. This is the
// single place new functions get wired in.
func resolveFunc(name string, sig Signature, argc int) (scalar.FuncKind, error) {
	returns := sig.ReturnType
	var firstArg scalar.DataType
	hasFirstArg := len(sig.ArgTypes) > 0
	if hasFirstArg {
		firstArg = sig.ArgTypes[0]
	}

	switch name {
	case "ZetaSQL:$add":
		if returns.Kind == scalar.KindFloat64 {
			return scalar.FuncAddDouble, nil
		}
		if returns.Kind == scalar.KindInt64 {
			return scalar.FuncAddInt64, nil
		}
	case "ZetaSQL:$and":
		return scalar.FuncAnd, nil
	case "ZetaSQL:$case_no_value":
		return scalar.FuncCaseNoValue, nil
	case "ZetaSQL:$case_with_value":
		return scalar.FuncCaseWithValue, nil
	case "ZetaSQL:$divide":
		return scalar.FuncDivideDouble, nil
	case "ZetaSQL:$greater":
		return scalar.FuncGreater, nil
	case "ZetaSQL:$greater_or_equal":
		return scalar.FuncGreaterOrEqual, nil
	case "ZetaSQL:$less":
		return scalar.FuncLess, nil
	case "ZetaSQL:$less_or_equal":
		return scalar.FuncLessOrEqual, nil
	case "ZetaSQL:$equal":
		return scalar.FuncEqual, nil
	case "ZetaSQL:$like":
		return scalar.FuncStringLike, nil
	case "ZetaSQL:$in":
		return scalar.FuncIn, nil
	case "ZetaSQL:$between":
		return scalar.FuncBetween, nil
	case "ZetaSQL:$is_null":
		return scalar.FuncIsNull, nil
	case "ZetaSQL:$is_true":
		return scalar.FuncIsTrue, nil
	case "ZetaSQL:$is_false":
		return scalar.FuncIsFalse, nil
	case "ZetaSQL:$multiply":
		if returns.Kind == scalar.KindFloat64 {
			return scalar.FuncMultiplyDouble, nil
		}
		if returns.Kind == scalar.KindInt64 {
			return scalar.FuncMultiplyInt64, nil
		}
	case "ZetaSQL:$not":
		return scalar.FuncNot, nil
	case "ZetaSQL:$not_equal":
		return scalar.FuncNotEqual, nil
	case "ZetaSQL:$or":
		return scalar.FuncOr, nil
	case "ZetaSQL:$subtract":
		if returns.Kind == scalar.KindFloat64 {
			return scalar.FuncSubtractDouble, nil
		}
		if returns.Kind == scalar.KindInt64 {
			return scalar.FuncSubtractInt64, nil
		}
	case "ZetaSQL:$unary_minus":
		if returns.Kind == scalar.KindInt64 {
			return scalar.FuncUnaryMinusInt64, nil
		}
		if returns.Kind == scalar.KindFloat64 {
			return scalar.FuncUnaryMinusDouble, nil
		}
	case "ZetaSQL:concat":
		return scalar.FuncConcatString, nil
	case "ZetaSQL:strpos":
		return scalar.FuncStrposString, nil
	case "ZetaSQL:lower":
		return scalar.FuncLowerString, nil
	case "ZetaSQL:upper":
		return scalar.FuncUpperString, nil
	case "ZetaSQL:length":
		return scalar.FuncLengthString, nil
	case "ZetaSQL:starts_with":
		return scalar.FuncStartsWithString, nil
	case "ZetaSQL:ends_with":
		return scalar.FuncEndsWithString, nil
	case "ZetaSQL:substr":
		if argc == 2 {
			return scalar.FuncSubstrString, nil
		}
		if argc == 3 {
			return scalar.FuncSubstrString, nil
		}
	case "ZetaSQL:trim":
		return scalar.FuncTrimString, nil
	case "ZetaSQL:ltrim":
		return scalar.FuncLtrimString, nil
	case "ZetaSQL:rtrim":
		return scalar.FuncRtrimString, nil
	case "ZetaSQL:replace":
		return scalar.FuncReplaceString, nil
	case "ZetaSQL:regexp_extract":
		return scalar.FuncRegexpExtractString, nil
	case "ZetaSQL:regexp_replace":
		return scalar.FuncRegexpReplaceString, nil
	case "ZetaSQL:byte_length":
		return scalar.FuncByteLengthString, nil
	case "ZetaSQL:char_length":
		return scalar.FuncCharLengthString, nil
	case "ZetaSQL:regexp_contains":
		return scalar.FuncRegexpContainsString, nil
	case "ZetaSQL:lpad":
		return scalar.FuncLpadString, nil
	case "ZetaSQL:rpad":
		return scalar.FuncRpadString, nil
	case "ZetaSQL:left":
		return scalar.FuncLeftString, nil
	case "ZetaSQL:right":
		return scalar.FuncRightString, nil
	case "ZetaSQL:repeat":
		return scalar.FuncRepeatString, nil
	case "ZetaSQL:reverse":
		return scalar.FuncReverseString, nil
	case "ZetaSQL:chr":
		return scalar.FuncChrString, nil
	case "ZetaSQL:if":
		return scalar.FuncIf, nil
	case "ZetaSQL:coalesce":
		return scalar.FuncCoalesce, nil
	case "ZetaSQL:ifnull":
		return scalar.FuncIfnull, nil
	case "ZetaSQL:nullif":
		return scalar.FuncNullif, nil
	case "ZetaSQL:current_date":
		return scalar.FuncCurrentDate, nil
	case "ZetaSQL:current_timestamp":
		return scalar.FuncCurrentTimestamp, nil
	case "ZetaSQL:date_add":
		return scalar.FuncDateAddDate, nil
	case "ZetaSQL:timestamp_add":
		return scalar.FuncTimestampAdd, nil
	case "ZetaSQL:date_diff":
		return scalar.FuncDateDiffDate, nil
	case "ZetaSQL:timestamp_diff":
		return scalar.FuncTimestampDiff, nil
	case "ZetaSQL:date_sub":
		return scalar.FuncDateSubDate, nil
	case "ZetaSQL:timestamp_sub":
		return scalar.FuncTimestampSub, nil
	case "ZetaSQL:date_trunc":
		return scalar.FuncDateTruncDate, nil
	case "ZetaSQL:timestamp_trunc":
		if argc == 2 {
			return scalar.FuncTimestampTrunc, nil
		}
		if argc == 3 {
			return 0, planerrors.ErrUnsupportedMode.New("TIMESTAMP_TRUNC", "explicit time zone argument")
		}
	case "ZetaSQL:date_from_unix_date":
		return scalar.FuncDateFromUnixDate, nil
	case "ZetaSQL:timestamp_from_unix_micros":
		return scalar.FuncTimestampFromUnixMicrosInt64, nil
	case "ZetaSQL:unix_date":
		return scalar.FuncUnixDate, nil
	case "ZetaSQL:unix_micros":
		return scalar.FuncUnixMicrosFromTimestamp, nil
	case "ZetaSQL:date":
		if hasFirstArg && firstArg.Kind == scalar.KindTimestamp {
			return scalar.FuncDateFromTimestamp, nil
		}
		if len(sig.ArgTypes) == 3 {
			return scalar.FuncDateFromYearMonthDay, nil
		}
	case "ZetaSQL:timestamp":
		if hasFirstArg && firstArg.Kind == scalar.KindString {
			return scalar.FuncTimestampFromString, nil
		}
		if hasFirstArg && firstArg.Kind == scalar.KindDate {
			return scalar.FuncTimestampFromDate, nil
		}
	case "ZetaSQL:string":
		if hasFirstArg && firstArg.Kind == scalar.KindDate {
			return scalar.FuncStringFromDate, nil
		}
		if hasFirstArg && firstArg.Kind == scalar.KindTimestamp {
			return scalar.FuncStringFromTimestamp, nil
		}
	case "ZetaSQL:$extract":
		if hasFirstArg && firstArg.Kind == scalar.KindDate {
			return scalar.FuncExtractFromDate, nil
		}
		if hasFirstArg && firstArg.Kind == scalar.KindTimestamp {
			return scalar.FuncExtractFromTimestamp, nil
		}
	case "ZetaSQL:$extract_date":
		if argc == 1 {
			return scalar.FuncExtractDateFromTimestamp, nil
		}
		if argc == 2 {
			return 0, planerrors.ErrUnsupportedMode.New("EXTRACT(DATE FROM ...)", "explicit time zone argument")
		}
	case "ZetaSQL:format_date":
		return scalar.FuncFormatDate, nil
	case "ZetaSQL:format_timestamp":
		if argc == 2 {
			return scalar.FuncFormatTimestamp, nil
		}
		if argc == 3 {
			return 0, planerrors.ErrUnsupportedMode.New("FORMAT_TIMESTAMP", "explicit time zone argument")
		}
	case "ZetaSQL:parse_date":
		return scalar.FuncParseDate, nil
	case "ZetaSQL:parse_timestamp":
		return scalar.FuncParseTimestamp, nil
	case "ZetaSQL:abs":
		if returns.Kind == scalar.KindInt64 {
			return scalar.FuncAbsInt64, nil
		}
		if returns.Kind == scalar.KindFloat64 {
			return scalar.FuncAbsDouble, nil
		}
	case "ZetaSQL:sign":
		if returns.Kind == scalar.KindInt64 {
			return scalar.FuncSignInt64, nil
		}
		if returns.Kind == scalar.KindFloat64 {
			return scalar.FuncSignDouble, nil
		}
	case "ZetaSQL:round":
		if len(sig.ArgTypes) == 1 {
			return scalar.FuncRoundDouble, nil
		}
		if len(sig.ArgTypes) == 2 {
			return scalar.FuncRoundWithDigitsDouble, nil
		}
	case "ZetaSQL:trunc":
		if len(sig.ArgTypes) == 1 {
			return scalar.FuncTruncDouble, nil
		}
		if len(sig.ArgTypes) == 2 {
			return scalar.FuncTruncWithDigitsDouble, nil
		}
	case "ZetaSQL:ceil":
		return scalar.FuncCeilDouble, nil
	case "ZetaSQL:floor":
		return scalar.FuncFloorDouble, nil
	case "ZetaSQL:mod":
		return scalar.FuncModInt64, nil
	case "ZetaSQL:div":
		return scalar.FuncDivInt64, nil
	case "ZetaSQL:is_inf":
		return scalar.FuncIsInf, nil
	case "ZetaSQL:is_nan":
		return scalar.FuncIsNan, nil
	case "ZetaSQL:greatest":
		return scalar.FuncGreatest, nil
	case "ZetaSQL:least":
		return scalar.FuncLeast, nil
	case "ZetaSQL:sqrt":
		return scalar.FuncSqrtDouble, nil
	case "ZetaSQL:pow":
		return scalar.FuncPowDouble, nil
	case "ZetaSQL:exp":
		return scalar.FuncExpDouble, nil
	case "ZetaSQL:ln":
		return scalar.FuncNaturalLogarithmDouble, nil
	case "ZetaSQL:log10":
		return scalar.FuncDecimalLogarithmDouble, nil
	case "ZetaSQL:log":
		if argc == 1 {
			return scalar.FuncNaturalLogarithmDouble, nil
		}
		if argc == 2 {
			return scalar.FuncLogarithmDouble, nil
		}
	case "ZetaSQL:cos":
		return scalar.FuncCosDouble, nil
	case "ZetaSQL:cosh":
		return scalar.FuncCoshDouble, nil
	case "ZetaSQL:acos":
		return scalar.FuncAcosDouble, nil
	case "ZetaSQL:acosh":
		return scalar.FuncAcoshDouble, nil
	case "ZetaSQL:sin":
		return scalar.FuncSinDouble, nil
	case "ZetaSQL:sinh":
		return scalar.FuncSinhDouble, nil
	case "ZetaSQL:asin":
		return scalar.FuncAsinDouble, nil
	case "ZetaSQL:asinh":
		return scalar.FuncAsinhDouble, nil
	case "ZetaSQL:tan":
		return scalar.FuncTanDouble, nil
	case "ZetaSQL:tanh":
		return scalar.FuncTanhDouble, nil
	case "ZetaSQL:atan":
		return scalar.FuncAtanDouble, nil
	case "ZetaSQL:atanh":
		return scalar.FuncAtanhDouble, nil
	case "ZetaSQL:atan2":
		return scalar.FuncAtan2Double, nil
	case "system:next_val":
		return scalar.FuncNextVal, nil
	case "system:get_var":
		return scalar.FuncGetVar, nil
	case "system:hash":
		return scalar.FuncHash, nil
	case "system:xid":
		return scalar.FuncXid, nil
	}
	return 0, planerrors.ErrUnknownFunction.New(name, argc)
}
