// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders analysis results as plain text. Renderers return
// unstyled strings; callers that want color apply it on top. Layout follows
// the Chinese reports users of this tool already know, with an English
// rendering that keeps the same shape.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shayne/vitals/internal/dataset"
	"github.com/shayne/vitals/internal/stats"
)

// Language selects the report language.
type Language string

const (
	Chinese Language = "zh"
	English Language = "en"
)

// Renderer formats analysis results in one language.
type Renderer struct {
	t text
}

// New returns a Renderer for lang. Unknown languages fall back to Chinese.
func New(lang Language) *Renderer {
	if lang == English {
		return &Renderer{t: enText}
	}
	return &Renderer{t: zhText}
}

// text holds every phrase a Renderer emits. Both languages share the
// template spacing so reports line up the same way.
type text struct {
	infoLoaded      string
	infoFile        string
	infoRows        string
	infoCols        string
	infoCategorical string
	infoContinuous  string

	describeTitle string
	descCount     string
	descMean      string
	descStd       string
	descMin       string
	descQ1        string
	descMedian    string
	descQ3        string
	descMax       string

	describeAllTitle string
	describeAllRows  string
	describeAllCols  string

	missingTitle    string
	missingRows     string
	missingCols     string
	missingNone     string
	missingAffected string
	missingCountCol string
	missingPctCol   string

	corrTitle         string
	corrVars          string
	corrNotableHeader string
	corrPair          string
	corrNone          string
	corrMatrixHeader  string
	strongPositive    string
	moderatePositive  string
	strongNegative    string
	moderateNegative  string

	tTestTitle    string
	tTestGroupCol string
	tTestValueCol string
	tTestGroup    string
	tTestN        string
	tTestMean     string
	tTestStd      string
	tTestStats    string
	tTestT        string
	tTestP        string
	tTestSig      string
	tTestNotSig   string

	describeHdr string
	testResults string

	pairedTitle  string
	pairedBefore string
	pairedAfter  string
	pairedN      string
	pairedPair   string
	pairedDiff   string
	pairedT      string
	pairedP      string
	pairedSig    string
	pairedChange string
	pairedUp     string
	pairedDown   string
	pairedNotSig string

	anovaTitle      string
	anovaGroupCol   string
	anovaValueCol   string
	anovaGroupCount string
	groupDescribe   string
	anovaGroupLine  string
	anovaResults    string
	anovaF          string
	anovaP          string
	anovaSig001     string
	anovaSig01      string
	anovaSig05      string
	anovaNotSig     string

	chiTitle  string
	chiVar1   string
	chiVar2   string
	chiTable  string
	chiStat   string
	chiDF     string
	chiP      string
	chiSig001 string
	chiSig01  string
	chiSig05  string
	chiNotSig string

	mannTitle    string
	mannGroupCol string
	mannValueCol string
	mannLine     string
	mannU        string
	mannP        string
	mannSig      string
	mannNotSig   string

	kruskalTitle  string
	kruskalH      string
	kruskalP      string
	kruskalSig    string
	kruskalNotSig string

	normTitle    string
	normVar      string
	normN        string
	normMean     string
	normStd      string
	normSkew     string
	normKurtosis string
	normStat     string
	normP        string
	normReject   string
	normRejectAd string
	normAccept   string
	normAcceptAd string

	regTitle     string
	regX         string
	regY         string
	regN         string
	regEquation  string
	regLine      string
	regCoef      string
	regSlope     string
	regIntercept string
	regFit       string
	regR         string
	regR2        string
	regP         string
	regVerdict   string
	regSig001    string
	regSig01     string
	regSig05     string
	regNotSig    string
	regPerUnit   string

	pcaTitle       string
	pcaVarianceHdr string
	pcaComponent   string
	pcaLoadingsHdr string
	pcaSuggestHdr  string
	pcaSuggestLine string

	kmTitle      string
	kmSizesHdr   string
	kmSizeLine   string
	kmCentersHdr string
	kmMeansHdr   string
	kmEvalHdr    string
	kmInertia    string

	hclustTitle   string
	hclustRows    string
	hclustSampled string

	chartSaved        string
	exportOK          string
	exportCSVFallback string
}

var zhText = text{
	infoLoaded:      "数据加载成功！",
	infoFile:        "文件: %s",
	infoRows:        "行数: %d",
	infoCols:        "列数: %d",
	infoCategorical: "分类型变量: %d",
	infoContinuous:  "连续型变量: %d",

	describeTitle: "=== '%s' 的描述性统计 ===",
	descCount:     "计数 (Count):    %.0f",
	descMean:      "均值 (Mean):     %.4f",
	descStd:       "标准差 (Std):    %.4f",
	descMin:       "最小值 (Min):    %.4f",
	descQ1:        "25%% (Q1):       %.4f",
	descMedian:    "中位数 (Median): %.4f",
	descQ3:        "75%% (Q3):       %.4f",
	descMax:       "最大值 (Max):    %.4f",

	describeAllTitle: "=== 批量描述统计 ===",
	describeAllRows:  "样本量: %d",
	describeAllCols:  "变量数: %d",

	missingTitle:    "=== 缺失值分析 ===",
	missingRows:     "总样本量: %d",
	missingCols:     "总变量数: %d",
	missingNone:     "✓ 数据完整，无缺失值",
	missingAffected: "存在缺失的变量数: %d",
	missingCountCol: "缺失数",
	missingPctCol:   "缺失比例(%)",

	corrTitle:         "=== 相关性分析结果 (Pearson) ===",
	corrVars:          "分析变量: %s",
	corrNotableHeader: "【强相关变量对 (|r| > 0.5)】",
	corrPair:          "  %s ↔ %s: r = %.4f (%s)",
	corrNone:          "  无强相关变量对",
	corrMatrixHeader:  "【完整相关矩阵】",
	strongPositive:    "强正相关",
	moderatePositive:  "中等正相关",
	strongNegative:    "强负相关",
	moderateNegative:  "中等负相关",

	tTestTitle:    "=== t 检验结果 ===",
	tTestGroupCol: "分类变量: %s",
	tTestValueCol: "连续变量: %s",
	tTestGroup:    "Group %d (%s):",
	tTestN:        "  n = %d",
	tTestMean:     "  Mean = %.4f",
	tTestStd:      "  Std = %.4f",
	tTestStats:    "检验统计量:",
	tTestT:        "  t = %.4f",
	tTestP:        "  p-value = %.6f",
	tTestSig:      "*** 结论: p < 0.05, 两组存在显著差异 ***",
	tTestNotSig:   "*** 结论: p >= 0.05, 两组无显著差异 ***",

	describeHdr: "【描述统计】",
	testResults: "【检验结果】",

	pairedTitle:  "=== 配对样本t检验 (Paired t-test) ===",
	pairedBefore: "变量1 (前测): %s",
	pairedAfter:  "变量2 (后测): %s",
	pairedN:      "配对样本量: n = %d",
	pairedPair:   "  %s: Mean = %.4f, SD = %.4f",
	pairedDiff:   "  差值:   Mean = %.4f, SD = %.4f",
	pairedT:      "  t统计量: %.4f",
	pairedP:      "  p-value: %.6f",
	pairedSig:    "*** 结论: 前后存在显著差异 (p < 0.05) ***",
	pairedChange: "  平均%s: %.4f",
	pairedUp:     "增加",
	pairedDown:   "减少",
	pairedNotSig: "结论: 前后无显著差异 (p ≥ 0.05)",

	anovaTitle:      "=== 单因素方差分析 (One-way ANOVA) ===",
	anovaGroupCol:   "分组变量: %s",
	anovaValueCol:   "因变量: %s",
	anovaGroupCount: "组数: %d",
	groupDescribe:   "【各组描述统计】",
	anovaGroupLine:  "  %s: n=%d, Mean=%.4f, SD=%.4f",
	anovaResults:    "【ANOVA结果】",
	anovaF:          "  F统计量:  %.4f",
	anovaP:          "  p-value:  %.6f",
	anovaSig001:     "*** 结论: 各组间存在极显著差异 (p < 0.001) ***",
	anovaSig01:      "*** 结论: 各组间存在非常显著差异 (p < 0.01) ***",
	anovaSig05:      "*** 结论: 各组间存在显著差异 (p < 0.05) ***",
	anovaNotSig:     "结论: 各组间无显著差异 (p ≥ 0.05)",

	chiTitle:  "=== 卡方独立性检验 (Chi-Square Test) ===",
	chiVar1:   "变量1: %s",
	chiVar2:   "变量2: %s",
	chiTable:  "【列联表 (观察频数)】",
	chiStat:   "  卡方值 χ²:     %.4f",
	chiDF:     "  自由度 df:     %d",
	chiP:      "  p-value:       %.6f",
	chiSig001: "*** 结论: 两变量间存在极显著关联 (p < 0.001) ***",
	chiSig01:  "*** 结论: 两变量间存在非常显著关联 (p < 0.01) ***",
	chiSig05:  "*** 结论: 两变量间存在显著关联 (p < 0.05) ***",
	chiNotSig: "结论: 两变量间无显著关联 (p ≥ 0.05)",

	mannTitle:    "=== Mann-Whitney U 检验 (非参数) ===",
	mannGroupCol: "分组变量: %s",
	mannValueCol: "检验变量: %s",
	mannLine:     "  %s: n=%d, 中位数=%.4f",
	mannU:        "  U统计量: %.4f",
	mannP:        "  p-value: %.6f",
	mannSig:      "*** 结论: 两组存在显著差异 (p < 0.05) ***",
	mannNotSig:   "结论: 两组无显著差异 (p ≥ 0.05)",

	kruskalTitle:  "=== Kruskal-Wallis H 检验 (非参数ANOVA) ===",
	kruskalH:      "  H统计量: %.4f",
	kruskalP:      "  p-value: %.6f",
	kruskalSig:    "*** 结论: 各组间存在显著差异 (p < 0.05) ***",
	kruskalNotSig: "结论: 各组间无显著差异 (p ≥ 0.05)",

	normTitle:    "=== 正态性检验 (%s) ===",
	normVar:      "变量: %s",
	normN:        "样本量: n = %d",
	normMean:     "  均值:     %.4f",
	normStd:      "  标准差:   %.4f",
	normSkew:     "  偏度:     %.4f",
	normKurtosis: "  峰度:     %.4f",
	normStat:     "  统计量W:  %.4f",
	normP:        "  p-value:  %.6f",
	normReject:   "*** 结论: 数据不服从正态分布 (p < 0.05) ***",
	normRejectAd: "建议: 使用非参数检验方法",
	normAccept:   "结论: 数据可认为服从正态分布 (p ≥ 0.05)",
	normAcceptAd: "建议: 可使用参数检验方法 (t检验, ANOVA等)",

	regTitle:     "=== 线性回归分析结果 ===",
	regX:         "自变量 (X): %s",
	regY:         "因变量 (Y): %s",
	regN:         "样本量: n = %d",
	regEquation:  "【回归方程】",
	regLine:      "  Y = %.4f × X %s%.4f",
	regCoef:      "【回归系数】",
	regSlope:     "  斜率 (Slope):     %.4f (SE = %.4f)",
	regIntercept: "  截距 (Intercept): %.4f",
	regFit:       "【拟合优度】",
	regR:         "  相关系数 r:       %.4f",
	regR2:        "  决定系数 R²:      %.4f",
	regP:         "  p-value:          %.6f",
	regVerdict:   "【结论】回归关系%s",
	regSig001:    "极显著 (p < 0.001)",
	regSig01:     "非常显著 (p < 0.01)",
	regSig05:     "显著 (p < 0.05)",
	regNotSig:    "不显著 (p ≥ 0.05)",
	regPerUnit:   "  X每增加1个单位，Y平均变化 %.4f 个单位",

	pcaTitle:       "          PCA主成分分析结果",
	pcaVarianceHdr: "【方差解释比例】",
	pcaComponent:   "  PC%d: %6.2f%% (累计: %6.2f%%)",
	pcaLoadingsHdr: "【主成分载荷矩阵】",
	pcaSuggestHdr:  "【建议】",
	pcaSuggestLine: "  前%d个主成分可解释80%%以上的方差",

	kmTitle:      "       K-Means聚类分析结果 (K=%d)",
	kmSizesHdr:   "【各簇样本数】",
	kmSizeLine:   "  簇 %d: %d 个样本 (%.1f%%)",
	kmCentersHdr: "【各簇中心点（标准化后）】",
	kmMeansHdr:   "【各簇特征均值（原始值）】",
	kmEvalHdr:    "【模型评估】",
	kmInertia:    "  簇内平方和 (Inertia): %.2f",

	hclustTitle:   "=== 层次聚类分析 (Ward) ===",
	hclustRows:    "样本量: %d",
	hclustSampled: "数据量较大，随机抽取 %d 个样本绘制树状图",

	chartSaved:        "✓ 图表已保存: %s",
	exportOK:          "✓ 已成功导出到: %s",
	exportCSVFallback: "Excel导出失败，已改存CSV: %s",
}

var enText = text{
	infoLoaded:      "Data loaded.",
	infoFile:        "File: %s",
	infoRows:        "Rows: %d",
	infoCols:        "Columns: %d",
	infoCategorical: "Categorical variables: %d",
	infoContinuous:  "Continuous variables: %d",

	describeTitle: "=== Descriptive statistics for '%s' ===",
	descCount:     "Count:    %.0f",
	descMean:      "Mean:     %.4f",
	descStd:       "Std:      %.4f",
	descMin:       "Min:      %.4f",
	descQ1:        "25%% (Q1): %.4f",
	descMedian:    "Median:   %.4f",
	descQ3:        "75%% (Q3): %.4f",
	descMax:       "Max:      %.4f",

	describeAllTitle: "=== Descriptive statistics ===",
	describeAllRows:  "Rows: %d",
	describeAllCols:  "Variables: %d",

	missingTitle:    "=== Missing value analysis ===",
	missingRows:     "Total rows: %d",
	missingCols:     "Total variables: %d",
	missingNone:     "✓ No missing values",
	missingAffected: "Variables with missing values: %d",
	missingCountCol: "missing",
	missingPctCol:   "missing %",

	corrTitle:         "=== Correlation analysis (Pearson) ===",
	corrVars:          "Variables: %s",
	corrNotableHeader: "[Notable pairs (|r| > 0.5)]",
	corrPair:          "  %s ↔ %s: r = %.4f (%s)",
	corrNone:          "  no notable pairs",
	corrMatrixHeader:  "[Correlation matrix]",
	strongPositive:    "strong positive",
	moderatePositive:  "moderate positive",
	strongNegative:    "strong negative",
	moderateNegative:  "moderate negative",

	tTestTitle:    "=== t-test ===",
	tTestGroupCol: "Grouping variable: %s",
	tTestValueCol: "Continuous variable: %s",
	tTestGroup:    "Group %d (%s):",
	tTestN:        "  n = %d",
	tTestMean:     "  Mean = %.4f",
	tTestStd:      "  Std = %.4f",
	tTestStats:    "Test statistics:",
	tTestT:        "  t = %.4f",
	tTestP:        "  p-value = %.6f",
	tTestSig:      "*** Conclusion: p < 0.05, the groups differ significantly ***",
	tTestNotSig:   "*** Conclusion: p >= 0.05, no significant difference between groups ***",

	describeHdr: "[Descriptives]",
	testResults: "[Test result]",

	pairedTitle:  "=== Paired-samples t-test ===",
	pairedBefore: "Variable 1 (before): %s",
	pairedAfter:  "Variable 2 (after): %s",
	pairedN:      "Pairs: n = %d",
	pairedPair:   "  %s: Mean = %.4f, SD = %.4f",
	pairedDiff:   "  diff:   Mean = %.4f, SD = %.4f",
	pairedT:      "  t statistic: %.4f",
	pairedP:      "  p-value: %.6f",
	pairedSig:    "*** Conclusion: significant before/after difference (p < 0.05) ***",
	pairedChange: "  mean %s: %.4f",
	pairedUp:     "increase",
	pairedDown:   "decrease",
	pairedNotSig: "Conclusion: no significant before/after difference (p ≥ 0.05)",

	anovaTitle:      "=== One-way ANOVA ===",
	anovaGroupCol:   "Grouping variable: %s",
	anovaValueCol:   "Dependent variable: %s",
	anovaGroupCount: "Groups: %d",
	groupDescribe:   "[Group descriptives]",
	anovaGroupLine:  "  %s: n=%d, Mean=%.4f, SD=%.4f",
	anovaResults:    "[ANOVA result]",
	anovaF:          "  F statistic:  %.4f",
	anovaP:          "  p-value:  %.6f",
	anovaSig001:     "*** Conclusion: groups differ extremely significantly (p < 0.001) ***",
	anovaSig01:      "*** Conclusion: groups differ very significantly (p < 0.01) ***",
	anovaSig05:      "*** Conclusion: groups differ significantly (p < 0.05) ***",
	anovaNotSig:     "Conclusion: no significant difference between groups (p ≥ 0.05)",

	chiTitle:  "=== Chi-square test of independence ===",
	chiVar1:   "Variable 1: %s",
	chiVar2:   "Variable 2: %s",
	chiTable:  "[Contingency table (observed)]",
	chiStat:   "  chi-square χ²: %.4f",
	chiDF:     "  df:            %d",
	chiP:      "  p-value:       %.6f",
	chiSig001: "*** Conclusion: extremely significant association (p < 0.001) ***",
	chiSig01:  "*** Conclusion: very significant association (p < 0.01) ***",
	chiSig05:  "*** Conclusion: significant association (p < 0.05) ***",
	chiNotSig: "Conclusion: no significant association (p ≥ 0.05)",

	mannTitle:    "=== Mann-Whitney U test (nonparametric) ===",
	mannGroupCol: "Grouping variable: %s",
	mannValueCol: "Test variable: %s",
	mannLine:     "  %s: n=%d, median=%.4f",
	mannU:        "  U statistic: %.4f",
	mannP:        "  p-value: %.6f",
	mannSig:      "*** Conclusion: the groups differ significantly (p < 0.05) ***",
	mannNotSig:   "Conclusion: no significant difference between groups (p ≥ 0.05)",

	kruskalTitle:  "=== Kruskal-Wallis H test (nonparametric ANOVA) ===",
	kruskalH:      "  H statistic: %.4f",
	kruskalP:      "  p-value: %.6f",
	kruskalSig:    "*** Conclusion: groups differ significantly (p < 0.05) ***",
	kruskalNotSig: "Conclusion: no significant difference between groups (p ≥ 0.05)",

	normTitle:    "=== Normality test (%s) ===",
	normVar:      "Variable: %s",
	normN:        "Sample size: n = %d",
	normMean:     "  Mean:     %.4f",
	normStd:      "  Std:      %.4f",
	normSkew:     "  Skewness: %.4f",
	normKurtosis: "  Kurtosis: %.4f",
	normStat:     "  Statistic W: %.4f",
	normP:        "  p-value:  %.6f",
	normReject:   "*** Conclusion: data are not normally distributed (p < 0.05) ***",
	normRejectAd: "Advice: use nonparametric tests",
	normAccept:   "Conclusion: data can be treated as normal (p ≥ 0.05)",
	normAcceptAd: "Advice: parametric tests (t-test, ANOVA) are appropriate",

	regTitle:     "=== Linear regression ===",
	regX:         "Independent (X): %s",
	regY:         "Dependent (Y): %s",
	regN:         "Sample size: n = %d",
	regEquation:  "[Equation]",
	regLine:      "  Y = %.4f × X %s%.4f",
	regCoef:      "[Coefficients]",
	regSlope:     "  Slope:     %.4f (SE = %.4f)",
	regIntercept: "  Intercept: %.4f",
	regFit:       "[Goodness of fit]",
	regR:         "  r:         %.4f",
	regR2:        "  R²:        %.4f",
	regP:         "  p-value:   %.6f",
	regVerdict:   "[Conclusion] the regression is %s",
	regSig001:    "extremely significant (p < 0.001)",
	regSig01:     "very significant (p < 0.01)",
	regSig05:     "significant (p < 0.05)",
	regNotSig:    "not significant (p ≥ 0.05)",
	regPerUnit:   "  each unit of X changes Y by %.4f on average",

	pcaTitle:       "          PCA principal component analysis",
	pcaVarianceHdr: "[Explained variance]",
	pcaComponent:   "  PC%d: %6.2f%% (cum.: %6.2f%%)",
	pcaLoadingsHdr: "[Component loadings]",
	pcaSuggestHdr:  "[Suggestion]",
	pcaSuggestLine: "  the first %d components explain over 80%% of the variance",

	kmTitle:      "       K-Means clustering (K=%d)",
	kmSizesHdr:   "[Cluster sizes]",
	kmSizeLine:   "  cluster %d: %d samples (%.1f%%)",
	kmCentersHdr: "[Cluster centers (standardized)]",
	kmMeansHdr:   "[Cluster means (original units)]",
	kmEvalHdr:    "[Model fit]",
	kmInertia:    "  within-cluster sum of squares (inertia): %.2f",

	hclustTitle:   "=== Hierarchical clustering (Ward) ===",
	hclustRows:    "Rows: %d",
	hclustSampled: "Large dataset, sampled %d rows for the dendrogram",

	chartSaved:        "✓ chart saved: %s",
	exportOK:          "✓ exported to: %s",
	exportCSVFallback: "Excel export failed, wrote CSV instead: %s",
}

// Info renders the post-load summary: file name, shape, and the columns by
// detected type.
func (r *Renderer) Info(file string, rows, cols int, categorical, continuous []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", r.t.infoLoaded)
	fmt.Fprintf(&b, r.t.infoFile+"\n", file)
	fmt.Fprintf(&b, r.t.infoRows+"\n", rows)
	fmt.Fprintf(&b, r.t.infoCols+"\n", cols)
	fmt.Fprintf(&b, r.t.infoCategorical, len(categorical))
	if len(categorical) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(categorical, ", "))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, r.t.infoContinuous, len(continuous))
	if len(continuous) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(continuous, ", "))
	}
	b.WriteString("\n")
	return b.String()
}

// Describe renders the eight-number summary of one column.
func (r *Renderer) Describe(column string, d stats.Descriptive) string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, r.t.describeTitle+"\n", column)
	fmt.Fprintf(&b, r.t.descCount+"\n", float64(d.N))
	fmt.Fprintf(&b, r.t.descMean+"\n", d.Mean)
	fmt.Fprintf(&b, r.t.descStd+"\n", d.Std)
	fmt.Fprintf(&b, r.t.descMin+"\n", d.Min)
	fmt.Fprintf(&b, r.t.descQ1+"\n", d.Q1)
	fmt.Fprintf(&b, r.t.descMedian+"\n", d.Median)
	fmt.Fprintf(&b, r.t.descQ3+"\n", d.Q3)
	fmt.Fprintf(&b, r.t.descMax+"\n", d.Max)
	return b.String()
}

// DescribeRow is one variable's row in the batch summary table.
type DescribeRow struct {
	Name       string
	Stats      stats.Descriptive
	Missing    int
	MissingPct float64
}

// DescribeAll renders the batch summary: one table row per continuous
// variable plus its missing counts.
func (r *Renderer) DescribeAll(totalRows int, rows []DescribeRow) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(r.t.describeAllTitle + "\n")
	fmt.Fprintf(&b, r.t.describeAllRows+"\n", totalRows)
	fmt.Fprintf(&b, r.t.describeAllCols+"\n\n", len(rows))

	headers := []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max", r.t.missingCountCol, r.t.missingPctCol}
	labels := make([]string, len(rows))
	cells := make([][]string, len(rows))
	for i, row := range rows {
		labels[i] = row.Name
		d := row.Stats
		cells[i] = []string{
			fmt.Sprintf("%.0f", float64(d.N)),
			f4(d.Mean), f4(d.Std), f4(d.Min), f4(d.Q1), f4(d.Median), f4(d.Q3), f4(d.Max),
			strconv.Itoa(row.Missing),
			fmt.Sprintf("%.2f", row.MissingPct),
		}
	}
	b.WriteString(tabulate(headers, labels, cells))
	b.WriteString("\n")
	return b.String()
}

// Missing renders the missing-value analysis. cols holds only columns with
// missing cells, sorted most-missing first.
func (r *Renderer) Missing(totalRows, totalCols int, cols []dataset.ColumnMissing) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(r.t.missingTitle + "\n")
	fmt.Fprintf(&b, r.t.missingRows+"\n", totalRows)
	fmt.Fprintf(&b, r.t.missingCols+"\n\n", totalCols)
	if len(cols) == 0 {
		b.WriteString(r.t.missingNone + "\n")
		return b.String()
	}
	fmt.Fprintf(&b, r.t.missingAffected+"\n\n", len(cols))
	headers := []string{r.t.missingCountCol, r.t.missingPctCol}
	labels := make([]string, len(cols))
	cells := make([][]string, len(cols))
	for i, c := range cols {
		labels[i] = c.Name
		cells[i] = []string{strconv.Itoa(c.Missing), fmt.Sprintf("%.2f", c.Percent)}
	}
	b.WriteString(tabulate(headers, labels, cells))
	b.WriteString("\n")
	return b.String()
}

// ChartSaved renders the chart-written line.
func (r *Renderer) ChartSaved(path string) string {
	return fmt.Sprintf(r.t.chartSaved, path)
}

// ExportOK renders the export success line.
func (r *Renderer) ExportOK(path string) string {
	return fmt.Sprintf(r.t.exportOK, path)
}

// ExportCSVFallback renders the message shown when the Excel writer failed
// and a CSV was written instead.
func (r *Renderer) ExportCSVFallback(path string) string {
	return fmt.Sprintf(r.t.exportCSVFallback, path)
}

func f4(v float64) string { return fmt.Sprintf("%.4f", v) }
