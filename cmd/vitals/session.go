// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shayne/vitals/internal/charts"
	"github.com/shayne/vitals/internal/config"
	"github.com/shayne/vitals/internal/dataset"
	"github.com/shayne/vitals/internal/mlearn"
	"github.com/shayne/vitals/internal/tui"
)

// session is the interactive menu mode: pick a CSV, then walk analysis
// menus until the user exits. Menu chrome stays Chinese; report text
// follows the configured language.
type session struct {
	in      *os.File
	out     *os.File
	cfg     config.Config
	cfgPath string
	a       *app
}

func runSession(initialFile string) error {
	cfg, cfgPath, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s := &session{in: os.Stdin, out: os.Stdout, cfg: cfg, cfgPath: cfgPath}

	file := initialFile
	if file == "" {
		file, err = s.pickFile()
		if errors.Is(err, tui.ErrPromptCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	if err := s.load(file); err != nil {
		return err
	}
	return s.menuLoop()
}

func (s *session) pickFile() (string, error) {
	dir := s.cfg.LastDir
	if dir == "" {
		dir = "."
	}
	return tui.PromptFile(s.in, s.out,
		"选择CSV数据文件",
		"回车确认，Ctrl+C 退出",
		dir, []string{".csv"})
}

func (s *session) load(file string) error {
	frame, err := dataset.Load(file)
	if err != nil {
		return err
	}
	s.a = newApp(frame, s.cfg)
	s.rememberDir(file)
	fmt.Fprintln(s.out)
	printReport(s.out, s.a.info())
	fmt.Fprintln(s.out)
	return nil
}

// rememberDir persists the file's directory so the next pickFile starts there.
func (s *session) rememberDir(file string) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return
	}
	dir := filepath.Dir(abs)
	if dir == s.cfg.LastDir {
		return
	}
	s.cfg.LastDir = dir
	s.a.cfg.LastDir = dir
	if err := config.Save(s.cfgPath, s.cfg); err != nil {
		fmt.Fprintf(os.Stderr, "vitals: save config: %v\n", err)
	}
}

const (
	menuSwitchFile = "__switch__"
	menuQuit       = "__quit__"
	menuBack       = "__back__"
	menuNoGroup    = "__nogroup__"
)

func (s *session) menuLoop() error {
	for {
		options := make([]tui.SelectOption, 0, len(sessionGroups)+2)
		for _, g := range sessionGroups {
			options = append(options, tui.SelectOption{Label: g.label, Value: g.label})
		}
		options = append(options,
			tui.SelectOption{Label: "📁 更换数据文件", Value: menuSwitchFile},
			tui.SelectOption{Label: "退出", Value: menuQuit},
		)
		desc := fmt.Sprintf("%s (行数: %d, 列数: %d)",
			s.a.frame.Name, s.a.frame.Rows(), len(s.a.frame.Columns()))
		choice, err := tui.PromptSelect(s.in, s.out,
			"CSV数据分析工具", desc, options, menuQuit)
		if errors.Is(err, tui.ErrPromptCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		switch choice {
		case menuQuit:
			return nil
		case menuSwitchFile:
			s.switchFile()
		default:
			for _, g := range sessionGroups {
				if g.label == choice {
					if err := s.groupLoop(g); err != nil {
						return err
					}
					break
				}
			}
		}
	}
}

func (s *session) switchFile() {
	file, err := s.pickFile()
	if errors.Is(err, tui.ErrPromptCancelled) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "vitals: %v\n", err)
		return
	}
	if err := s.load(file); err != nil {
		fmt.Fprintf(os.Stderr, "加载失败: %v\n", err)
	}
}

func (s *session) groupLoop(g sessionGroup) error {
	for {
		options := make([]tui.SelectOption, 0, len(g.actions)+1)
		for _, act := range g.actions {
			options = append(options, tui.SelectOption{Label: act.label, Value: act.label})
		}
		options = append(options, tui.SelectOption{Label: "返回", Value: menuBack})
		choice, err := tui.PromptSelect(s.in, s.out, g.label, "", options, menuBack)
		if errors.Is(err, tui.ErrPromptCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == menuBack {
			return nil
		}
		for _, act := range g.actions {
			if act.label == choice {
				s.runAction(g, act)
				break
			}
		}
	}
}

func (s *session) runAction(g sessionGroup, act sessionAction) {
	err := act.run(s)
	if errors.Is(err, tui.ErrPromptCancelled) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", g.failPrefix, err)
	}
}

type sessionAction struct {
	label string
	run   func(*session) error
}

type sessionGroup struct {
	label      string
	failPrefix string
	actions    []sessionAction
}

var sessionGroups = []sessionGroup{
	{
		label:      "📊 可视化图表",
		failPrefix: "绘制失败",
		actions: []sessionAction{
			{"直方图", func(s *session) error {
				column, err := s.selectContinuous("直方图")
				if err != nil {
					return err
				}
				values, err := s.a.frame.Values(column)
				if err != nil {
					return err
				}
				return s.showChart(s.a.charts.Histogram(column, values, 0))
			}},
			{"折线图", func(s *session) error {
				column, err := s.selectContinuous("折线图")
				if err != nil {
					return err
				}
				values, err := s.a.frame.Values(column)
				if err != nil {
					return err
				}
				return s.showChart(s.a.charts.Line(column, values, "", nil))
			}},
			{"柱状图", func(s *session) error {
				column, err := s.selectColumn("柱状图", s.allColumns())
				if err != nil {
					return err
				}
				return s.showChart(barChart(s.a, column))
			}},
			{"饼图", func(s *session) error {
				column, err := s.selectCategorical("饼图")
				if err != nil {
					return err
				}
				levels, counts, err := levelCounts(s.a.frame, column)
				if err != nil {
					return err
				}
				return s.showChart(s.a.charts.Pie(column, levels, counts))
			}},
			{"箱线图", func(s *session) error {
				return s.groupedChart("箱线图", s.a.charts.Box)
			}},
			{"小提琴图", func(s *session) error {
				return s.groupedChart("小提琴图", s.a.charts.Violin)
			}},
			{"Q-Q图", func(s *session) error {
				column, err := s.selectContinuous("Q-Q图")
				if err != nil {
					return err
				}
				values, err := s.a.frame.Values(column)
				if err != nil {
					return err
				}
				return s.showChart(s.a.charts.QQ(column, values))
			}},
			{"散点图", func(s *session) error {
				x, y, err := s.selectPair("散点图", "X变量", "Y变量")
				if err != nil {
					return err
				}
				xs, ys, err := s.a.frame.PairValues(x, y)
				if err != nil {
					return err
				}
				return s.showChart(s.a.charts.Scatter(x, y, xs, ys, nil))
			}},
			{"热力图", func(s *session) error {
				_, m, err := s.a.corr(nil)
				if err != nil {
					return err
				}
				return s.showChart(s.a.charts.Heatmap(m))
			}},
		},
	},
	{
		label:      "🚀 高级可视化",
		failPrefix: "绘制失败",
		actions: []sessionAction{
			{"3D散点图", func(s *session) error {
				columns, err := s.multiSelectContinuous("3D散点图", 3, nil)
				if err != nil {
					return err
				}
				if len(columns) < 3 {
					return errors.New("3D散点图需要选择3个连续变量")
				}
				groupCol, err := s.optionalCategorical("3D散点图")
				if err != nil {
					return err
				}
				series, err := series3D(s.a.frame, columns[0], columns[1], columns[2], groupCol)
				if err != nil {
					return err
				}
				return s.showChart(s.a.charts.Scatter3D(columns[0], columns[1], columns[2], series))
			}},
			{"3D曲面图", func(s *session) error {
				columns, err := s.multiSelectContinuous("3D曲面图", 3, nil)
				if err != nil {
					return err
				}
				if len(columns) < 3 {
					return errors.New("3D曲面图需要选择3个连续变量")
				}
				rows, err := s.a.frame.CompleteRows(columns...)
				if err != nil {
					return err
				}
				xs, ys, zs := splitTriples(rows)
				return s.showChart(s.a.charts.Surface3D(columns[0], columns[1], columns[2], xs, ys, zs))
			}},
			{"配对图", func(s *session) error {
				columns, err := s.multiSelectContinuous("配对图", 2, defaultColumns(s.a.frame, 4))
				if err != nil {
					return err
				}
				return s.showChart(pairGrid(s.a, columns))
			}},
			{"雷达图", func(s *session) error {
				groupCol, err := s.optionalCategorical("雷达图")
				if err != nil {
					return err
				}
				groups, names, err := radarGroups(s.a.frame, nil, groupCol)
				if err != nil {
					return err
				}
				return s.showChart(s.a.charts.Radar(names, groups))
			}},
			{"分布对比", func(s *session) error {
				column, err := s.selectContinuous("分布对比")
				if err != nil {
					return err
				}
				groupCol, err := s.selectCategorical("分布对比")
				if err != nil {
					return err
				}
				groups, err := chartGroups(s.a.frame, column, groupCol)
				if err != nil {
					return err
				}
				return s.showChart(s.a.charts.Compare(column, groupCol, groups))
			}},
		},
	},
	{
		label:      "🔬 参数检验",
		failPrefix: "检验失败",
		actions: []sessionAction{
			{"正态性检验", func(s *session) error {
				column, err := s.selectContinuous("正态性检验")
				if err != nil {
					return err
				}
				return s.showText(s.a.normality(column))
			}},
			{"独立t检验", func(s *session) error {
				column, groupCol, err := s.selectValueAndGroup("独立t检验")
				if err != nil {
					return err
				}
				return s.showText(s.a.tTest(column, groupCol))
			}},
			{"配对t检验", func(s *session) error {
				first, second, err := s.selectPair("配对t检验", "第一个变量", "第二个变量")
				if err != nil {
					return err
				}
				return s.showText(s.a.pairedT(first, second))
			}},
			{"ANOVA", func(s *session) error {
				column, groupCol, err := s.selectValueAndGroup("ANOVA")
				if err != nil {
					return err
				}
				return s.showText(s.a.anova(column, groupCol))
			}},
			{"线性回归", func(s *session) error {
				x, y, err := s.selectPair("线性回归", "X(自变量)", "Y(因变量)")
				if err != nil {
					return err
				}
				return s.showText(s.a.regress(x, y, true))
			}},
		},
	},
	{
		label:      "📉 非参数检验",
		failPrefix: "检验失败",
		actions: []sessionAction{
			{"卡方检验", func(s *session) error {
				rows, err := s.selectCategorical("卡方检验 (行变量)")
				if err != nil {
					return err
				}
				cols, err := s.selectCategorical("卡方检验 (列变量)")
				if err != nil {
					return err
				}
				return s.showText(s.a.chiSquare(rows, cols))
			}},
			{"Mann-Whitney", func(s *session) error {
				column, groupCol, err := s.selectValueAndGroup("Mann-Whitney")
				if err != nil {
					return err
				}
				return s.showText(s.a.mannWhitney(column, groupCol))
			}},
			{"Kruskal-Wallis", func(s *session) error {
				column, groupCol, err := s.selectValueAndGroup("Kruskal-Wallis")
				if err != nil {
					return err
				}
				return s.showText(s.a.kruskal(column, groupCol))
			}},
		},
	},
	{
		label:      "📋 数据分析",
		failPrefix: "分析失败",
		actions: []sessionAction{
			{"描述统计", func(s *session) error {
				column, err := s.selectContinuous("描述统计")
				if err != nil {
					return err
				}
				return s.showText(s.a.describeColumn(column))
			}},
			{"批量统计", func(s *session) error {
				return s.showText(s.a.describeAll())
			}},
			{"相关性分析", func(s *session) error {
				text, _, err := s.a.corr(nil)
				return s.showText(text, err)
			}},
			{"缺失值分析", func(s *session) error {
				return s.showText(s.a.missingReport(), nil)
			}},
		},
	},
	{
		label:      "🧠 机器学习",
		failPrefix: "分析失败",
		actions: []sessionAction{
			{"PCA 2D图", func(s *session) error {
				return s.showText(s.a.pca(nil, 0, "2d"))
			}},
			{"PCA 3D图", func(s *session) error {
				return s.showText(s.a.pca(nil, 0, "3d"))
			}},
			{"PCA分析", func(s *session) error {
				return s.showText(s.a.pca(nil, 0, ""))
			}},
			{"K-Means聚类", func(s *session) error {
				k, err := s.promptK()
				if err != nil {
					return err
				}
				return s.showText(s.a.kmeans(nil, k, false, true))
			}},
			{"聚类分析", func(s *session) error {
				k, err := s.promptK()
				if err != nil {
					return err
				}
				return s.showText(s.a.kmeans(nil, k, false, false))
			}},
			{"层次聚类树状图", func(s *session) error {
				return s.showText(s.a.hclust(nil, true))
			}},
		},
	},
	{
		label:      "💾 导出操作",
		failPrefix: "导出失败",
		actions: []sessionAction{
			{"导出Excel", func(s *session) error {
				out, err := tui.PromptInputWithDefault(s.in, s.out,
					"导出统计结果", "输出文件名，支持 .xlsx 或 .csv", "",
					s.a.frame.Name+"_统计分析.xlsx", nil)
				if err != nil {
					return err
				}
				out = s.a.exportPath(out)
				if _, err := os.Stat(out); err == nil {
					overwrite, err := tui.PromptConfirm(s.in, s.out,
						"文件已存在", fmt.Sprintf("%s 已存在，是否覆盖?", out))
					if err != nil {
						return err
					}
					if !overwrite {
						return nil
					}
				}
				return s.showText(s.a.export(out))
			}},
		},
	},
}

// showText prints an analysis report, tolerating the (text, err) pair
// shape every app method returns.
func (s *session) showText(text string, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out)
	printReport(s.out, text)
	fmt.Fprintln(s.out)
	return nil
}

// showChart reports a freshly written chart path and opens it when
// configured to.
func (s *session) showChart(path string, err error) error {
	if err != nil {
		return err
	}
	s.a.maybeOpen(path)
	return s.showText(s.a.r.ChartSaved(path), nil)
}

// groupedChart drives box- and violin-style charts: one continuous
// value column, optionally split by a categorical column.
func (s *session) groupedChart(title string, draw func(string, string, []charts.Group) (string, error)) error {
	column, err := s.selectContinuous(title)
	if err != nil {
		return err
	}
	groupCol, err := s.optionalCategorical(title)
	if err != nil {
		return err
	}
	groups, err := chartGroups(s.a.frame, column, groupCol)
	if err != nil {
		return err
	}
	return s.showChart(draw(column, groupCol, groups))
}

func (s *session) allColumns() []string {
	cols := s.a.frame.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

func (s *session) selectColumn(title string, names []string) (string, error) {
	options := make([]tui.SelectOption, len(names))
	for i, name := range names {
		options[i] = tui.SelectOption{Label: name, Value: name}
	}
	return tui.PromptSelect(s.in, s.out, title, "选择变量", options, "")
}

func (s *session) selectContinuous(title string) (string, error) {
	names := s.a.frame.Continuous()
	if len(names) == 0 {
		return "", errors.New("没有连续型变量")
	}
	return s.selectColumn(title+" (连续型变量)", names)
}

func (s *session) selectCategorical(title string) (string, error) {
	names := s.a.frame.Categorical()
	if len(names) == 0 {
		return "", errors.New("没有分类型变量")
	}
	return s.selectColumn(title+" (分类型变量)", names)
}

// optionalCategorical offers the categorical columns plus a "no
// grouping" entry; "" means ungrouped.
func (s *session) optionalCategorical(title string) (string, error) {
	names := s.a.frame.Categorical()
	if len(names) == 0 {
		return "", nil
	}
	options := make([]tui.SelectOption, 0, len(names)+1)
	options = append(options, tui.SelectOption{Label: "(不分组)", Value: menuNoGroup})
	for _, name := range names {
		options = append(options, tui.SelectOption{Label: name, Value: name})
	}
	choice, err := tui.PromptSelect(s.in, s.out, title+" (分组变量)", "可选分组", options, menuNoGroup)
	if err != nil {
		return "", err
	}
	if choice == menuNoGroup {
		return "", nil
	}
	return choice, nil
}

// selectPair picks two distinct continuous columns.
func (s *session) selectPair(title, firstLabel, secondLabel string) (string, string, error) {
	names := s.a.frame.Continuous()
	if len(names) < 2 {
		return "", "", errors.New("至少需要2个连续变量")
	}
	x, err := s.selectColumn(fmt.Sprintf("%s (%s)", title, firstLabel), names)
	if err != nil {
		return "", "", err
	}
	rest := make([]string, 0, len(names)-1)
	for _, name := range names {
		if name != x {
			rest = append(rest, name)
		}
	}
	y, err := s.selectColumn(fmt.Sprintf("%s (%s)", title, secondLabel), rest)
	if err != nil {
		return "", "", err
	}
	return x, y, nil
}

func (s *session) selectValueAndGroup(title string) (string, string, error) {
	column, err := s.selectContinuous(title)
	if err != nil {
		return "", "", err
	}
	groupCol, err := s.selectCategorical(title)
	if err != nil {
		return "", "", err
	}
	return column, groupCol, nil
}

func (s *session) multiSelectContinuous(title string, min int, preselected []string) ([]string, error) {
	names := s.a.frame.Continuous()
	if len(names) < min {
		return nil, fmt.Errorf("至少需要%d个连续变量", min)
	}
	options := make([]tui.SelectOption, len(names))
	for i, name := range names {
		options[i] = tui.SelectOption{Label: name, Value: name}
	}
	return tui.PromptMultiSelect(s.in, s.out, title+" (连续型变量)",
		fmt.Sprintf("至少选择%d个", min), options, preselected)
}

func defaultColumns(f *dataset.Frame, n int) []string {
	names := f.Continuous()
	if len(names) > n {
		names = names[:n]
	}
	return names
}

func (s *session) promptK() (int, error) {
	value, err := tui.PromptInputWithDefault(s.in, s.out,
		"请输入聚类数K:", fmt.Sprintf("%d 到 %d 之间的整数", mlearn.MinK, mlearn.MaxK),
		"", "3", func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < mlearn.MinK || n > mlearn.MaxK {
				return fmt.Errorf("请输入 %d 到 %d 之间的整数", mlearn.MinK, mlearn.MaxK)
			}
			return nil
		})
	if err != nil {
		return 0, err
	}
	k, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("请输入 %d 到 %d 之间的整数", mlearn.MinK, mlearn.MaxK)
	}
	return k, nil
}
